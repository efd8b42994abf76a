package export

import "strings"

// linebreaks are flattened to one space each, not removed, so words on
// adjacent lines do not merge.
var linebreakFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// AssembleRecord produces the output record for one row of transcoded
// fields. With trim set, each field loses leading and trailing whitespace
// and embedded linebreaks are flattened. The fields slice is reused.
func AssembleRecord(fields []string, trim bool) []string {
	if !trim {
		return fields
	}
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if strings.ContainsAny(field, "\r\n") {
			field = linebreakFlattener.Replace(field)
		}
		fields[i] = field
	}
	return fields
}
