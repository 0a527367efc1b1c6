package dates

import (
	"time"

	"github.com/goodsign/monday"
)

// TimestampLayout is the second precision layout used in track cache files.
const TimestampLayout = "2006-01-02 15:04:05"

const dateLayout = "2 January 2006"

// FormatRange renders the day range between from and to in the given locale.
// A range within a single day is rendered as that day.
func FormatRange(from, to time.Time, locale monday.Locale) string {
	first := monday.Format(from, dateLayout, locale)
	if SameDay(from, to) {
		return first
	}

	return first + " - " + monday.Format(to, dateLayout, locale)
}

func SameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
