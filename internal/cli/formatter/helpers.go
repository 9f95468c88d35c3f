package formatter

import (
	"fmt"
	"time"
)

// FormatSeconds renders whole seconds as a compact duration such as
// "1h 30m" or "45m" or "30s".
func FormatSeconds(secs int64) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// HumanTimestamp renders an instant as a short local timestamp.
func HumanTimestamp(t time.Time) string {
	return t.Local().Format("Jan 02 15:04")
}

// TruncID shortens an id to its first 8 characters for table display.
func TruncID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
