package model

import "time"

// OTPToken is a single-use email passcode. A row is created per
// sign-up/sign-in attempt and burned on first successful verify.
type OTPToken struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	AccountID string `gorm:"index"`
	Code      string
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}
