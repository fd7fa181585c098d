package service

import (
	"time"

	"storeit/storage-api/model"

	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type CategoryUsage struct {
	Size       int64     `json:"size"`
	LatestDate time.Time `json:"latestDate"`
}

// UsageSummary is the per-category breakdown of a user's stored bytes
// against the fixed quota. Only owned files count, shares don't.
type UsageSummary struct {
	Document CategoryUsage `json:"document"`
	Image    CategoryUsage `json:"image"`
	Video    CategoryUsage `json:"video"`
	Audio    CategoryUsage `json:"audio"`
	Other    CategoryUsage `json:"other"`
	Used     int64         `json:"used"`
	All      int64         `json:"all"`
}

func (s *UsageSummary) bucket(fileType string) *CategoryUsage {
	switch fileType {
	case model.TypeDocument:
		return &s.Document
	case model.TypeImage:
		return &s.Image
	case model.TypeVideo:
		return &s.Video
	case model.TypeAudio:
		return &s.Audio
	default:
		return &s.Other
	}
}

// TotalSpaceUsed scans every file owned by the user and accumulates
// per-category sizes, the running total and the most recent update time
// per category. Every file lands in exactly one bucket so the bucket
// sum always equals Used.
func TotalSpaceUsed(db *gorm.DB, ownerID string) (*UsageSummary, error) {
	var files []model.File

	err := db.
		Where("owner_id = ?", ownerID).
		Find(&files).
		Error
	if err != nil {
		return nil, err
	}

	summary := &UsageSummary{
		All: viper.GetInt64("storage.max_usage"),
	}

	for _, f := range files {
		b := summary.bucket(f.Type)
		b.Size += f.Size
		summary.Used += f.Size

		if f.UpdatedAt.After(b.LatestDate) {
			b.LatestDate = f.UpdatedAt
		}
	}

	return summary, nil
}
