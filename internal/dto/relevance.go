package dto

type RelevanceRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type RelevanceResponse struct {
	Relevant bool   `json:"relevant"`
	Error    string `json:"error,omitempty"`
}

type KeywordLookupResponse struct {
	Keyword    string `json:"keyword"`
	Outcome    string `json:"outcome"`
	Count      int64  `json:"count"`
	LastSeenAt string `json:"last_seen_at"`
}
