package domain

import "time"

// HistoryEntry records one translation attempt.
type HistoryEntry struct {
	ID        string
	Text      string
	Result    *StructuredQuery
	ErrorKind ErrorKind
	Error     string
	Model     string
	Duration  time.Duration
	CreatedAt time.Time
}

// Succeeded reports whether the translation produced a query.
func (h HistoryEntry) Succeeded() bool {
	return h.Result != nil && h.Error == ""
}
