package model

import "time"

// File type categories. Every recognized extension maps to exactly one
// of these, anything else falls back to TypeOther.
const (
	TypeDocument = "document"
	TypeImage    = "image"
	TypeVideo    = "video"
	TypeAudio    = "audio"
	TypeOther    = "other"
)

type File struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
	Type string `gorm:"index" json:"type"`

	// OwnerID is set on upload and never updated afterwards
	OwnerID   string `gorm:"index;not null" json:"owner"`
	AccountID string `json:"accountId"`

	Extension string `json:"extension"`
	URL       string `json:"url"`
	Size      int64  `json:"size"`

	// Emails of users the file is shared with. Replaced wholesale on
	// every share update, duplicates are the caller's problem
	Users StringSlice `json:"users"`

	// Key of the object in the storage bucket. Kept separate from the
	// row ID so different users can upload files with the same name
	BucketFileID string `gorm:"uniqueIndex" json:"bucketFileId"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
