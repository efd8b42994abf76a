package export

import (
	"strconv"

	"github.com/darianmavgo/mkcsv/sheet"
)

// Transcode converts one typed cell into its output field. isDate is the
// column's resolved date flag: when set, float-bearing cells are decoded as
// day-count serials. An integral serial renders as a date, a fractional one
// as a date-time. A serial that cannot be decoded yields an inline ERROR
// field instead of failing the row.
func Transcode(cell sheet.Cell, isDate bool) string {
	switch cell.Kind {
	case sheet.KindEmpty:
		return ""
	case sheet.KindText:
		return cell.Str
	case sheet.KindInteger:
		return strconv.FormatInt(cell.Int, 10)
	case sheet.KindBoolean:
		return strconv.FormatBool(cell.Bool)
	case sheet.KindError:
		return cell.Str
	case sheet.KindFloat, sheet.KindDateTime:
		return transcodeFloat(cell.Num, isDate)
	}
	return ""
}

func transcodeFloat(f float64, isDate bool) string {
	if !isDate {
		return formatFloat(f)
	}

	t, err := sheet.SerialToTime(f)
	if f != float64(int64(f)) {
		if err != nil {
			return "ERROR: Cannot convert " + formatFloat(f) + " to datetime"
		}
		return t.Format("2006-01-02 15:04:05")
	}
	if err != nil {
		return "ERROR: Cannot convert " + formatFloat(f) + " to date"
	}
	return t.Format("2006-01-02")
}

// formatFloat renders the shortest plain-decimal string that round-trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
