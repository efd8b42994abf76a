// Package sheet models a workbook as an ordered list of named sheets whose
// rows carry typed cells, independent of the container format that stored
// them.
package sheet

import "strconv"

// CellKind discriminates the value held by a Cell. The set is closed: the
// transcoder switches over every kind and new kinds must be threaded through
// all consumers.
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindText
	KindInteger
	KindFloat
	KindBoolean
	KindError
	KindDateTime
)

func (k CellKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindError:
		return "error"
	case KindDateTime:
		return "datetime"
	}
	return "unknown"
}

// Cell is a tagged union over the value kinds a worksheet cell can hold.
// Only the field matching Kind is meaningful; the zero value is an empty
// cell.
type Cell struct {
	Kind CellKind
	Str  string  // KindText and KindError
	Num  float64 // KindFloat and KindDateTime
	Int  int64   // KindInteger
	Bool bool    // KindBoolean
}

func EmptyCell() Cell             { return Cell{Kind: KindEmpty} }
func TextCell(s string) Cell      { return Cell{Kind: KindText, Str: s} }
func IntegerCell(i int64) Cell    { return Cell{Kind: KindInteger, Int: i} }
func FloatCell(f float64) Cell    { return Cell{Kind: KindFloat, Num: f} }
func BooleanCell(b bool) Cell     { return Cell{Kind: KindBoolean, Bool: b} }
func ErrorCell(code string) Cell  { return Cell{Kind: KindError, Str: code} }
func DateTimeCell(f float64) Cell { return Cell{Kind: KindDateTime, Num: f} }

// HeaderText returns the cell's text when it is a text cell and "" for every
// other kind. Header rows are classified by name, so a numeric or empty
// header contributes nothing to matching.
func (c Cell) HeaderText() string {
	if c.Kind == KindText {
		return c.Str
	}
	return ""
}

// CellFromRaw builds a typed cell from a raw (unformatted) cell value as the
// workbook reader reports it. Numeric text with no fractional part or
// exponent becomes an integer cell so its printed form round-trips exactly.
func CellFromRaw(raw string) Cell {
	if raw == "" {
		return EmptyCell()
	}
	if !hasFraction(raw) {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return IntegerCell(i)
		}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return FloatCell(f)
	}
	return TextCell(raw)
}

func hasFraction(raw string) bool {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '.', 'e', 'E':
			return true
		}
	}
	return false
}
