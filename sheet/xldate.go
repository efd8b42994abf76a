package sheet

import (
	"fmt"
	"math"
	"time"
)

// Workbooks in the 1900 date system store dates as days since this epoch.
// Serial 1 is 1900-01-01; the two-day offset absorbs the fictitious
// 1900-02-29 that the format inherited from Lotus 1-2-3.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// serialTooLarge is the first serial at or beyond Gregorian year 10000.
const serialTooLarge = 2958466

// SerialToTime converts a day-count serial to a calendar time. The integer
// part is the day offset from the 1899-12-30 epoch and the fractional part
// is the time of day, rounded to whole seconds.
func SerialToTime(serial float64) (time.Time, error) {
	if math.IsNaN(serial) || serial < 0 {
		return time.Time{}, fmt.Errorf("serial %v is not a valid day count", serial)
	}
	if serial >= serialTooLarge {
		return time.Time{}, fmt.Errorf("serial %v is out of range", serial)
	}

	days := int(serial)
	frac := serial - float64(days)
	seconds := int(math.Round(frac * 86400.0))
	if seconds == 86400 {
		seconds = 0
		days++
	}

	return serialEpoch.AddDate(0, 0, days).Add(time.Duration(seconds) * time.Second), nil
}
