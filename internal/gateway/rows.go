package gateway

import (
	"database/sql"
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// binaryTypes are driver type names whose byte values are never text.
var binaryTypes = map[string]bool{
	"BLOB":       true,
	"TINYBLOB":   true,
	"MEDIUMBLOB": true,
	"LONGBLOB":   true,
	"BINARY":     true,
	"VARBINARY":  true,
	"BYTEA":      true,
}

type Column struct {
	Name string
	Type string
}

// Row is one result row as returned by the driver.
type Row struct {
	columns []Column
	values  []any
}

// Get returns the raw value of the named column.
func (r Row) Get(name string) (any, bool) {
	for i, c := range r.columns {
		if c.Name == name {
			return r.values[i], true
		}
	}
	return nil, false
}

// Bytes returns the named column as bytes, for binary or textual values.
func (r Row) Bytes(name string) ([]byte, bool) {
	v, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	switch x := v.(type) {
	case []byte:
		return x, true
	case string:
		return []byte(x), true
	}
	return nil, false
}

// Text returns the named column as a string; binary columns are not text.
func (r Row) Text(name string) (string, bool) {
	for i, c := range r.columns {
		if c.Name != name {
			continue
		}
		switch x := r.values[i].(type) {
		case string:
			return x, true
		case []byte:
			if isBinary(c.Type, x) {
				return "", false
			}
			return string(x), true
		}
		return "", false
	}
	return "", false
}

// Map renders the row as a JSON-safe object keyed by column name.
// Binary values are base64 encoded.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.columns))
	for i, c := range r.columns {
		m[c.Name] = jsonValue(r.values[i], c.Type)
	}
	return m
}

// MapWithText is Map with the named columns rendered as text even when
// the store declares them binary. Used for columns holding URLs.
func (r Row) MapWithText(text ...string) map[string]any {
	m := r.Map()
	for _, name := range text {
		if b, ok := r.Bytes(name); ok && utf8.Valid(b) {
			m[name] = string(b)
		}
	}
	return m
}

// Maps renders rows for a JSON list response; never nil.
func Maps(rows []Row) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Map())
	}
	return out
}

func jsonValue(v any, typ string) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	if isBinary(typ, b) {
		return base64.StdEncoding.EncodeToString(b)
	}
	return string(b)
}

func isBinary(typ string, b []byte) bool {
	return binaryTypes[strings.ToUpper(typ)] || !utf8.Valid(b)
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	columns := make([]Column, len(types))
	for i, ct := range types {
		columns[i] = Column{Name: ct.Name(), Type: ct.DatabaseTypeName()}
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, Row{columns: columns, values: values})
	}
	return out, rows.Err()
}
