package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueString converts a record field value to the string form used for link
// matching. Numbers are rendered the way they print in the source data
// (5 -> "5", 5.5 -> "5.5") so that numeric and string typed fields compare
// equal. The second return value is false for nil.
func ValueString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case []byte:
		// MySQL driver returns []byte for text columns
		return string(s), true
	case json.Number:
		if i, err := s.Int64(); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		if f, err := s.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return s.String(), true
	case fmt.Stringer:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case int32:
		return strconv.FormatInt(int64(s), 10), true
	case int16:
		return strconv.FormatInt(int64(s), 10), true
	case int8:
		return strconv.FormatInt(int64(s), 10), true
	case uint:
		return strconv.FormatUint(uint64(s), 10), true
	case uint64:
		return strconv.FormatUint(s, 10), true
	case uint32:
		return strconv.FormatUint(uint64(s), 10), true
	case uint16:
		return strconv.FormatUint(uint64(s), 10), true
	case uint8:
		return strconv.FormatUint(uint64(s), 10), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return fmt.Sprint(s), true
	}
}

// MatchKey returns the lower-cased string form of v and whether v can take
// part in a link. Nil values and values that are blank after trimming never
// participate.
func MatchKey(v interface{}) (string, bool) {
	s, ok := ValueString(v)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return strings.ToLower(s), true
}
