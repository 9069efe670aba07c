package materialize

import (
	"encoding/json"
	"fmt"
	"time"
)

// coerceValue converts a parsed value into a form the SQLite driver can
// bind. Nulls pass through, timestamps become RFC 3339 strings, booleans
// become 0/1 and nested structures are serialized as JSON.
func coerceValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return v.Format(time.RFC3339)
	case bool:
		if v {
			return 1
		}
		return 0
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	default:
		return value
	}
}
