package metrics

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders amount as rupees with two decimals and locale digit grouping.
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return "₹" + inrPrinter.Sprintf("%.2f", amount)
}

// FormatDuration renders whole seconds as "Ym Zs", or "Xh Ym Zs" from one hour up.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		return "0m 0s"
	}
	mins := seconds / 60
	secs := seconds % 60
	hours := mins / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, mins%60, secs)
	}
	return fmt.Sprintf("%dm %ds", mins, secs)
}

// FormatPercent renders part/whole as a rounded percentage; "0%" when whole is 0.
func FormatPercent(part, whole int) string {
	if whole <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(math.Round(float64(part)*100/float64(whole))))
}
