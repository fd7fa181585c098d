// Package model defines database models
package model

import "time"

type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	FullName  string `json:"fullName"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Avatar    string `json:"avatar"`
	AccountID string `gorm:"uniqueIndex;not null" json:"accountId"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Files    []File    `gorm:"foreignKey:OwnerID" json:"-"`
	Sessions []Session `gorm:"foreignKey:AccountID;references:AccountID" json:"-"`
}
