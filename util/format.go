package util

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// FileSize renders a byte count human readable. Sizes below 1 KiB are
// whole bytes, everything above is rounded to the requested number of
// digits (default 1).
func FileSize(sizeInBytes int64, digits ...int) string {
	d := 1
	if len(digits) > 0 {
		d = digits[0]
	}

	switch {
	case sizeInBytes < 1<<10:
		return strconv.FormatInt(sizeInBytes, 10) + " Bytes"
	case sizeInBytes < 1<<20:
		return strconv.FormatFloat(float64(sizeInBytes)/(1<<10), 'f', d, 64) + " KB"
	case sizeInBytes < 1<<30:
		return strconv.FormatFloat(float64(sizeInBytes)/(1<<20), 'f', d, 64) + " MB"
	default:
		return strconv.FormatFloat(float64(sizeInBytes)/(1<<30), 'f', d, 64) + " GB"
	}
}

// FormatDateTime renders a timestamp as "h:MMam, D Mon". A zero time
// renders as a placeholder dash.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	period := "am"
	hours := t.Hour()
	if hours >= 12 {
		period = "pm"
	}

	hours = hours % 12
	if hours == 0 {
		hours = 12
	}

	return fmt.Sprintf("%d:%02d%s, %d %s", hours, t.Minute(), period, t.Day(), t.Format("Jan"))
}

// CalculatePercentage returns how much of the configured quota the
// given usage takes, as a percentage with two decimals.
func CalculatePercentage(sizeInBytes int64) float64 {
	quota := viper.GetInt64("storage.max_usage")
	if quota <= 0 {
		quota = 2 << 30
	}

	p := float64(sizeInBytes) / float64(quota) * 100
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(p, 'f', 2, 64), 64)
	return rounded
}
