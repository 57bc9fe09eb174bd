package webhook

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"sync"

	"go_5_algo_keep/internal/model"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/push.json
var pushSchemaJSON []byte

const pushSchemaURL = "push.json"

var (
	pushSchemaOnce sync.Once
	pushSchema     *jsonschema.Schema
	pushSchemaErr  error
)

func compiledPushSchema() (*jsonschema.Schema, error) {
	pushSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(pushSchemaJSON))
		if err != nil {
			pushSchemaErr = fmt.Errorf("webhook: parse push schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(pushSchemaURL, doc); err != nil {
			pushSchemaErr = fmt.Errorf("webhook: add push schema: %w", err)
			return
		}
		pushSchema, pushSchemaErr = c.Compile(pushSchemaURL)
	})
	return pushSchema, pushSchemaErr
}

// DecodePushPayload は push イベントのボディをスキーマ検証してからデコードする。
// application/json と application/x-www-form-urlencoded (payload フィールド) に対応。
// 形式不正はすべて model.ErrInvalidInput を包んで返す
func DecodePushPayload(body []byte, contentType string) (*model.PushPayload, error) {
	raw, err := extractJSON(body, contentType)
	if err != nil {
		return nil, err
	}

	schema, err := compiledPushSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not valid json: %v", model.ErrInvalidInput, err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: payload does not match schema: %v", model.ErrInvalidInput, err)
	}

	var payload model.PushPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", model.ErrInvalidInput, err)
	}
	return &payload, nil
}

func extractJSON(body []byte, contentType string) ([]byte, error) {
	mediaType := "application/json"
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: content type %q: %v", model.ErrInvalidInput, contentType, err)
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, fmt.Errorf("%w: form body: %v", model.ErrInvalidInput, err)
		}
		payload := values.Get("payload")
		if payload == "" {
			return nil, fmt.Errorf("%w: form body has no payload field", model.ErrInvalidInput)
		}
		return []byte(payload), nil
	case "application/json":
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, fmt.Errorf("%w: empty body", model.ErrInvalidInput)
		}
		return body, nil
	default:
		return nil, fmt.Errorf("%w: unsupported content type %q", model.ErrInvalidInput, mediaType)
	}
}
