package domain

import "time"

// Like is one ledger entry. At most one entry exists per (user, event); the
// event's rating and like count are derivable by folding over these entries.
type Like struct {
	ID        int64
	UserID    int64
	EventID   int64
	IsLike    bool
	ClickedOn time.Time
}

// Polarity is the entry's contribution to the event rating.
func (l Like) Polarity() int64 {
	if l.IsLike {
		return 1
	}
	return -1
}
