package model

// PushPayload は push イベントのうち利用する項目だけを持つ
type PushPayload struct {
	Ref        string         `json:"ref"`
	After      string         `json:"after"`
	Repository PushRepository `json:"repository"`
	Commits    []PushCommit   `json:"commits"`
}

type PushRepository struct {
	FullName string `json:"full_name"`
}

type PushCommit struct {
	ID       string   `json:"id"`
	Added    []string `json:"added"`
	Modified []string `json:"modified"`
	Removed  []string `json:"removed"`
}

// ChangeSet は push に含まれる変更パスの集合
type ChangeSet struct {
	Paths []string            // 重複なし、初出順
	Added map[string]struct{} // 一度でも added に現れたパス
}

func (c ChangeSet) IsAdded(path string) bool {
	_, ok := c.Added[path]
	return ok
}

// PushResult は webhook 処理結果のレスポンス
type PushResult struct {
	Success   bool `json:"success"`
	Processed int  `json:"processed"`
	Seeded    int  `json:"seeded"`
	Failed    int  `json:"failed"`
}

// MailMessage は送信するメール1通
type MailMessage struct {
	To      string
	Subject string
	Text    string
	HTML    string
}
