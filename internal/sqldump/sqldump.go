// Package sqldump renders the raw contents of an encrypted store as an SQL
// script: a drop, a create, and one insert per row.
//
// The dump is structural, not a decrypting export. Values land in the
// script exactly as stored, ciphertext included, so the artifact carries
// the same confidentiality as the source file.
package sqldump

import (
	"fmt"
	"strings"
)

// Dialect selects the flavor of SQL emitted by Script.
type Dialect string

const (
	// DialectMySQL emits backtick-quoted identifiers and an InnoDB engine
	// clause. This is the default dialect.
	DialectMySQL Dialect = "mysql"

	// DialectSQLite emits double-quoted identifiers and no engine clause,
	// suitable for loading straight into a SQLite database.
	DialectSQLite Dialect = "sqlite"
)

// ValidDialects lists the dialects Script accepts.
var ValidDialects = []Dialect{DialectMySQL, DialectSQLite}

// Script builds the SQL text for a table holding the given raw rows.
//
// Every column is a generously sized text column regardless of content;
// values are escaped by doubling single quotes and nothing else. Rows
// shorter than the schema pad with empty strings; longer rows drop the
// extra cells. One statement per line.
func Script(tableName string, fields []string, rows [][]string, dialect Dialect) (string, error) {
	if tableName == "" {
		return "", fmt.Errorf("sqldump: empty table name")
	}
	if len(fields) == 0 {
		return "", fmt.Errorf("sqldump: empty field schema")
	}
	quote, err := identQuoter(dialect)
	if err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("DROP TABLE IF EXISTS %s;", quote(tableName)))

	colDefs := make([]string, len(fields))
	colNames := make([]string, len(fields))
	for i, name := range fields {
		colDefs[i] = fmt.Sprintf("%s VARCHAR(1024)", quote(name))
		colNames[i] = quote(name)
	}
	create := fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", quote(tableName), strings.Join(colDefs, ",\n  "))
	if dialect == DialectMySQL {
		create += " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	}
	lines = append(lines, create+";")

	for _, row := range rows {
		values := make([]string, len(fields))
		for i := range fields {
			var v string
			if i < len(row) {
				v = row[i]
			}
			values[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
		}
		lines = append(lines, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
			quote(tableName), strings.Join(colNames, ", "), strings.Join(values, ", ")))
	}
	return strings.Join(lines, "\n"), nil
}

// identQuoter returns the identifier quoting function for a dialect.
func identQuoter(dialect Dialect) (func(string) string, error) {
	switch dialect {
	case DialectMySQL:
		return func(name string) string {
			return "`" + strings.ReplaceAll(name, "`", "``") + "`"
		}, nil
	case DialectSQLite:
		return func(name string) string {
			return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
		}, nil
	default:
		return nil, fmt.Errorf("sqldump: unknown dialect %q (valid: %v)", dialect, ValidDialects)
	}
}
