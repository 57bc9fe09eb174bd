// Package webhook は GitHub の push 通知を検証・解釈する。
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader は署名が入るリクエストヘッダー
const SignatureHeader = "X-Hub-Signature-256"

const signaturePrefix = "sha256="

// Sign は body の署名を "sha256=<hex>" 形式で返す
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature は受信したままのバイト列に対して署名を検証する。
// 署名・シークレットが空の場合は常に false
func VerifySignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(body, secret)), []byte(signature))
}
