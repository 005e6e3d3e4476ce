package dashboard

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ClockFormat is the timestamp layout shown in the dashboard header.
const ClockFormat = "2006-01-02 15:04:05"

var groupedPrinter = message.NewPrinter(language.English)

// FormatBytes renders a byte count with two decimals, dividing by 1024
// per step from B up through PB. Values below 1024 stay in B, so 1023
// renders as "1023.00 B" and 1024 as "1.00 KB". PB is the ceiling unit
// regardless of magnitude.
func FormatBytes(n uint64) string {
	value := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.2f PB", value)
}

// FormatCount renders an integer with thousands separators, e.g.
// "1,234,567".
func FormatCount(n uint64) string {
	return groupedPrinter.Sprintf("%d", n)
}

// FormatClock renders t in the header clock layout.
func FormatClock(t time.Time) string {
	return t.Format(ClockFormat)
}

// FormatFrequency renders a CPU base frequency in MHz, or "n/a" when
// the platform does not report one.
func FormatFrequency(mhz float64) string {
	if mhz <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f MHz", mhz)
}
