package parsing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/tablesmith/internal/types"
)

// maxSampleValues caps the representative non-null samples kept per column.
const maxSampleValues = 5

// datetimeLayouts are tried in order when classifying textual values.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func parseDatetime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// classifyValue reports which logical types a single value is compatible
// with. A value can satisfy several (e.g. "1" is integer, float and string).
type typeSet struct {
	integer  bool
	float    bool
	boolean  bool
	datetime bool
}

func classifyValue(v any) typeSet {
	switch val := v.(type) {
	case bool:
		return typeSet{boolean: true}
	case int, int32, int64:
		return typeSet{integer: true, float: true}
	case float32:
		return classifyFloat(float64(val))
	case float64:
		return classifyFloat(val)
	case time.Time:
		return typeSet{datetime: true}
	case string:
		s := strings.TrimSpace(val)
		var ts typeSet
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			ts.integer = true
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			ts.float = true
		}
		if _, ok := parseBool(s); ok {
			ts.boolean = true
		}
		if _, ok := parseDatetime(s); ok {
			ts.datetime = true
		}
		return ts
	default:
		return typeSet{}
	}
}

func classifyFloat(f float64) typeSet {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return typeSet{integer: true, float: true}
	}
	return typeSet{float: true}
}

// inferColumnType resolves a column's value domain to the narrowest type
// covering every non-null value, defaulting to string.
func inferColumnType(values []any) types.ColumnType {
	if len(values) == 0 {
		return types.TypeString
	}
	all := typeSet{integer: true, float: true, boolean: true, datetime: true}
	for _, v := range values {
		ts := classifyValue(v)
		all.integer = all.integer && ts.integer
		all.float = all.float && ts.float
		all.boolean = all.boolean && ts.boolean
		all.datetime = all.datetime && ts.datetime
	}
	switch {
	case all.boolean:
		return types.TypeBoolean
	case all.integer:
		return types.TypeInteger
	case all.float:
		return types.TypeFloat
	case all.datetime:
		return types.TypeDatetime
	default:
		return types.TypeString
	}
}

// normalizeValue converts a raw value to the column's inferred type.
// Values that fail conversion pass through unchanged.
func normalizeValue(v any, t types.ColumnType) any {
	if isNull(v) {
		return nil
	}
	s, isStr := v.(string)
	switch t {
	case types.TypeInteger:
		switch val := v.(type) {
		case float64:
			return int64(val)
		case float32:
			return int64(val)
		case int:
			return int64(val)
		case int64:
			return val
		}
		if isStr {
			if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				return n
			}
		}
	case types.TypeFloat:
		if isStr {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return f
			}
		}
	case types.TypeBoolean:
		if isStr {
			if b, ok := parseBool(s); ok {
				return b
			}
		}
	case types.TypeDatetime:
		if isStr {
			if t, ok := parseDatetime(s); ok {
				return t
			}
		}
	}
	return v
}

// buildTable computes per-column statistics over raw rows and normalizes
// values to their inferred types. Column order follows the header order.
func buildTable(name string, columnNames []string, rows []types.Row) types.ParsedTable {
	columns := make([]types.ParsedColumn, 0, len(columnNames))
	for _, colName := range columnNames {
		nonNull := make([]any, 0, len(rows))
		nullCount := 0
		for _, row := range rows {
			v := row[colName]
			if isNull(v) {
				nullCount++
				continue
			}
			nonNull = append(nonNull, v)
		}

		colType := inferColumnType(nonNull)

		// Normalize in place so downstream loading sees typed values.
		for _, row := range rows {
			row[colName] = normalizeValue(row[colName], colType)
		}

		unique := make(map[string]struct{}, len(nonNull))
		samples := make([]any, 0, maxSampleValues)
		for _, row := range rows {
			v := row[colName]
			if v == nil {
				continue
			}
			unique[fmt.Sprint(v)] = struct{}{}
			if len(samples) < maxSampleValues {
				samples = append(samples, v)
			}
		}

		columns = append(columns, types.ParsedColumn{
			Name:         colName,
			Type:         colType,
			NullCount:    nullCount,
			UniqueCount:  len(unique),
			SampleValues: samples,
		})
	}

	return types.ParsedTable{
		Name:     name,
		Columns:  columns,
		RowCount: len(rows),
		Rows:     rows,
	}
}
