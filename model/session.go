package model

import "time"

// Session is the server-side half of the login cookie. The cookie only
// carries the opaque secret, everything else lives here.
type Session struct {
	ID        string `gorm:"primaryKey"`
	AccountID string `gorm:"index"`
	Secret    string `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
