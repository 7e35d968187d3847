package engine

import "time"

// stringValue extracts a string from a query record value.
func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// stringSlice extracts a []string from a query record value. Drivers return
// list values as []any.
func stringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// timeValue extracts a timestamp from a query record value. Temporal
// properties come back as time.Time; string values are parsed as RFC 3339.
func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}
