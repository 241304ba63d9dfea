package matching

import (
	"encoding/json"
	"fmt"
)

// Serialize produces the textual form of a comparison value for matching
// against a raw request body. Strings and byte slices are used verbatim,
// fmt.Stringer values use their String method, everything else is JSON
// encoded.
func Serialize(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.RawMessage:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("serializing %T: %w", value, err)
		}
		return string(data), nil
	}
}

// FormatValue renders a scalar query or header value as text. Unlike
// Serialize it never fails: non-string scalars use their default format.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
