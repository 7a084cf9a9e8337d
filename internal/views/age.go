package views

import (
	"fmt"
	"time"
)

// RelativeAge renders the time between t and now as a coarse label such as
// "59s ago", "3h ago" or "2y ago". Each unit is the largest whole unit that
// fits: months are 30-day buckets and years are 12-month buckets.
// A zero t renders as "never"; a t after now renders as "0s ago".
func RelativeAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	sec := int64(now.Sub(t) / time.Second)
	if sec < 0 {
		sec = 0
	}
	if sec < 60 {
		return fmt.Sprintf("%ds ago", sec)
	}
	mins := sec / 60
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}
	hr := mins / 60
	if hr < 24 {
		return fmt.Sprintf("%dh ago", hr)
	}
	days := hr / 24
	if days < 30 {
		return fmt.Sprintf("%dd ago", days)
	}
	months := days / 30
	if months < 12 {
		return fmt.Sprintf("%dmo ago", months)
	}
	return fmt.Sprintf("%dy ago", months/12)
}
