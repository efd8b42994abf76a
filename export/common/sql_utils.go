package common

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	TBPRE = "tb"
	CLPRE = "cl"
)

var (
	space = regexp.MustCompile(`\s+`)
	reg   = regexp.MustCompile(`[^a-zA-Z0-9 _]+`)
)

/*
	GenCompliantNames generates names that can be used in sqlite.

The rules for column names and table names are so similar this is one
function taking a prefix as input: lower case, snake case, strip disallowed
characters, dodge sqlite keywords. If a standardized name results in an
unusable result then the name is {prefix}{idx}.
*/
func GenCompliantNames(rawnames []string, prefix string) []string {
	gorgeous := make([]string, len(rawnames))

	counter := map[string]int{}
	for idx, item := range rawnames {
		item = strings.TrimSpace(item)
		item = reg.ReplaceAllString(item, "")
		item = space.ReplaceAllString(item, "_")
		item = strings.ToLower(item)
		// remove keywords
		for _, keyword := range KEYWORDS_LOWER {
			if item == keyword {
				item = fmt.Sprintf("%s%d", prefix, idx)
				break
			}
		}

		// If stripping non-compliant chars leaves us with nothing, give it a default index name
		if len(item) == 0 {
			gorgeous[idx] = fmt.Sprintf("%s%d", prefix, idx)
			continue
		}

		// specific sqlite rule: cannot start with a number
		if item[0] >= '0' && item[0] <= '9' {
			item = fmt.Sprintf("%s%d%s", prefix, idx, item)
		}

		counter[item]++
		if counter[item] == 1 {
			gorgeous[idx] = item
		} else {
			// use counter to avoid collision
			gorgeous[idx] = fmt.Sprintf("%s%d", item, counter[item])
		}
	}
	return gorgeous
}

// GenColumnNames generates sanitized SQL column names from raw headers.
// If headers are complete junk it will return cl0, cl1, cl2, etc.
func GenColumnNames(rawheaders []string) []string {
	return GenCompliantNames(rawheaders, CLPRE)
}

// GenTableNames generates sanitized SQL table names from raw sheet names.
// If sheet names are complete junk it will return tb0, tb1, tb2, etc.
func GenTableNames(rawtables []string) []string {
	return GenCompliantNames(rawtables, TBPRE)
}

// GenInsertStmt generates a parameterized INSERT for the given table and fields.
func GenInsertStmt(table string, fields []string) (string, error) {
	if table == "" || len(fields) == 0 {
		return "", fmt.Errorf("table name and fields are required")
	}
	stmtSQL := fmt.Sprintf(`
INSERT INTO %s (
	%s
) VALUES (%s)`,
		table,
		strings.Join(fields, ","),
		strings.Repeat("?,", len(fields)-1)+"?",
	)
	return strings.TrimSpace(stmtSQL), nil
}

// GenCreateTableSQL generates a CREATE TABLE SQL statement. Every column is
// TEXT: the export pipeline hands the sink already-transcoded strings.
func GenCreateTableSQL(tableName string, columnNames []string) string {
	var builder strings.Builder
	builder.Grow(len(tableName) + len(columnNames)*20) // Heuristic pre-allocation

	builder.WriteString("CREATE TABLE ")
	builder.WriteString(tableName)
	builder.WriteString(" (")
	for i, name := range columnNames {
		builder.WriteString(name)
		builder.WriteString(" TEXT")
		if i < len(columnNames)-1 {
			builder.WriteString(", ")
		}
	}
	builder.WriteByte(')')
	return builder.String()
}

// KEYWORDS_LOWER is the lowercase set of SQLite keywords that may require
// renaming when used as identifiers.
// https://sqlite.org/lang_keywords.html
var KEYWORDS_LOWER = []string{
	"abort", "action", "add", "after", "all", "alter", "always", "analyze", "and", "as",
	"asc", "attach", "autoincrement", "before", "begin", "between", "by", "cascade", "case", "cast",
	"check", "collate", "column", "commit", "conflict", "constraint", "create", "cross", "current", "current_date",
	"current_time", "current_timestamp", "database", "default", "deferrable", "deferred", "delete", "desc", "detach", "distinct",
	"do", "drop", "each", "else", "end", "escape", "except", "exclude", "exclusive", "exists",
	"explain", "fail", "filter", "first", "following", "for", "foreign", "from", "full", "generated",
	"glob", "group", "groups", "having", "if", "ignore", "immediate", "in", "index", "indexed",
	"initially", "inner", "insert", "instead", "intersect", "into", "is", "isnull", "join", "key",
	"last", "left", "like", "limit", "match", "materialized", "natural", "no", "not", "nothing",
	"notnull", "null", "nulls", "of", "offset", "on", "or", "order", "others", "outer",
	"over", "partition", "plan", "pragma", "preceding", "primary", "query", "raise", "range", "recursive",
	"references", "regexp", "reindex", "release", "rename", "replace", "restrict", "returning", "right", "rollback",
	"row", "rows", "savepoint", "select", "set", "table", "temp", "temporary", "then", "ties",
	"to", "transaction", "trigger", "unbounded", "union", "unique", "update", "using", "vacuum", "values",
	"view", "virtual", "when", "where", "window", "with", "without",
}
