package util

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{2048, "2.0 KB"},
		{1<<20 - 1, "1024.0 KB"},
		{1 << 20, "1.0 MB"},
		{5 << 20, "5.0 MB"},
		{1<<30 - 1, "1024.0 MB"},
		{1 << 30, "1.0 GB"},
		{3 << 30, "3.0 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FileSize(tt.size), "size %d", tt.size)
	}
}

func TestFileSizeDigits(t *testing.T) {
	assert.Equal(t, "2.000 KB", FileSize(2048, 3))
	assert.Equal(t, "2 KB", FileSize(2048, 0))
	assert.Equal(t, "1.50 MB", FileSize(3<<20/2, 2))

	// Bytes ignore the digit count
	assert.Equal(t, "100 Bytes", FileSize(100, 3))
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "—", FormatDateTime(time.Time{}))

	d := time.Date(2025, time.January, 15, 13, 5, 0, 0, time.UTC)
	assert.Equal(t, "1:05pm, 15 Jan", FormatDateTime(d))

	d = time.Date(2025, time.February, 2, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, "12:30am, 2 Feb", FormatDateTime(d))

	d = time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "12:00pm, 31 Dec", FormatDateTime(d))
}

func TestCalculatePercentage(t *testing.T) {
	viper.Set("storage.max_usage", int64(2)<<30)

	assert.Equal(t, 50.0, CalculatePercentage(1<<30))
	assert.Equal(t, 100.0, CalculatePercentage(2<<30))
	assert.Equal(t, 0.0, CalculatePercentage(0))
	assert.Equal(t, 25.0, CalculatePercentage(1<<29))

	// Tracks the configured quota
	viper.Set("storage.max_usage", int64(1)<<30)
	assert.Equal(t, 100.0, CalculatePercentage(1<<30))
	viper.Set("storage.max_usage", int64(2)<<30)
}
