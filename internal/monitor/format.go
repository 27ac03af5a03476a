package monitor

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes formats a byte count with 1024-based units and one decimal:
// 512 -> "512.0 B", 1024 -> "1.0 KB".
func FormatBytes(bytes uint64) string {
	value := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f PB", value)
}

// FormatBytesExact formats a byte count with thousands separators: "1,048,576".
func FormatBytesExact(bytes uint64) string {
	return FormatCount(bytes)
}

// FormatCount formats a counter with thousands separators.
func FormatCount(n uint64) string {
	return humanize.Comma(int64(n))
}

// FormatBytesGB formats a byte count as whole gibibytes: 2147483648 -> "2G".
func FormatBytesGB(bytes uint64) string {
	return fmt.Sprintf("%.0fG", float64(bytes)/(1<<30))
}

// FormatTemp formats a temperature reading as whole degrees, "46°C".
func FormatTemp(t float64) string {
	return fmt.Sprintf("%.0f°C", t)
}

// FormatUptime renders an uptime like "3d 4h 12m".
func FormatUptime(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
