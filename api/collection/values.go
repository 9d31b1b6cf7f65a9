package collection

import (
	"encoding/json"
	"strconv"

	"horseadmin/domain/resource"
)

// fieldLookup is Schema.Field for any record type.
type fieldLookup func(name string) (resource.Field, bool)

// toValues flattens a JSON request body into form values so the API and
// the dashboard share one coercion path. Nested objects become dotted
// names unless the field itself is a JSON field; arrays stay JSON encoded.
func toValues(body map[string]any, field fieldLookup) resource.Values {
	out := make(resource.Values)
	flatten(out, "", body, field)
	return out
}

func flatten(out resource.Values, prefix string, body map[string]any, field fieldLookup) {
	for k, v := range body {
		name := prefix + k
		f, known := field(name)
		switch t := v.(type) {
		case map[string]any:
			if known && f.Kind == resource.KindJSON {
				out[name] = encode(t)
				continue
			}
			flatten(out, name+".", t, field)
		case []any:
			if known && f.Kind == resource.KindJSON {
				out[name] = encode(t)
				continue
			}
			items := make([]string, 0, len(t))
			for _, item := range t {
				items = append(items, scalar(item))
			}
			out[name] = encode(items)
		default:
			out[name] = scalar(t)
		}
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return encode(t)
	}
}

func encode(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}
