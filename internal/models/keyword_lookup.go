package models

import "time"

type LookupOutcome string

const (
	OutcomeResolved LookupOutcome = "resolved"
	OutcomeFallback LookupOutcome = "fallback"
	OutcomeNotFound LookupOutcome = "not_found"
)

// NoKeyword is recorded when the input carried no vocabulary keyword.
const NoKeyword = "no_keyword"

// KeywordLookup is a per-keyword hit count by outcome.
type KeywordLookup struct {
	Keyword    string        `db:"keyword"`
	Outcome    LookupOutcome `db:"outcome"`
	Count      int64         `db:"count"`
	LastSeenAt time.Time     `db:"last_seen_at"`
}
