package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Values are raw form inputs keyed by field name.
type Values map[string]string

// Get returns the value of name, "" when absent.
func (v Values) Get(name string) string { return v[name] }

// Blank returns the create-mode form: declared defaults, otherwise the
// first option of a select.
func (s *Schema[R]) Blank() Values {
	out := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		switch {
		case f.Default != "":
			out[f.Name] = f.Default
		case f.Kind == KindSelect:
			out[f.Name] = f.Options[0]
		default:
			out[f.Name] = ""
		}
	}
	return out
}

// Prefill returns the edit-mode form for rec.
func (s *Schema[R]) Prefill(rec R) Values {
	raw, err := json.Marshal(rec)
	if err != nil {
		return s.Blank()
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return s.Blank()
	}

	out := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = formatValue(f, lookup(doc, f.Name))
	}
	return out
}

// Payload assembles a record from form values. Nothing is sent anywhere:
// a coercion failure is returned as a validation error naming the field.
func (s *Schema[R]) Payload(values Values) (R, error) {
	var zero R
	doc := make(map[string]any)
	coerced := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		v, reason, err := coerce(f, values[f.Name])
		if reason != "" {
			return zero, NewValidationError(s.Entity, f.Name, reason, err)
		}
		setPath(doc, f.Name, v)
		coerced[f.Name] = v
	}

	rec := s.New()
	if err := s.decode(doc, rec); err != nil {
		// 逐个字段重试, 找出形状不对的那一个
		for _, f := range s.Fields {
			single := make(map[string]any)
			setPath(single, f.Name, coerced[f.Name])
			if ferr := s.decode(single, s.New()); ferr != nil {
				return zero, NewValidationError(s.Entity, f.Name, "has the wrong shape", ferr)
			}
		}
		return zero, NewValidationError(s.Entity, "form", "has malformed values", err)
	}
	return rec, nil
}

func (s *Schema[R]) decode(doc map[string]any, rec R) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  rec,
	})
	if err != nil {
		return err
	}
	return dec.Decode(doc)
}

func coerce(f Field, in string) (any, string, error) {
	raw := strings.TrimSpace(in)

	if f.Kind == KindBool {
		return parseBool(raw), "", nil
	}

	if raw == "" {
		if f.Required {
			return nil, "is required", nil
		}
		switch f.Kind {
		case KindInt:
			return 0, "", nil
		case KindFloat:
			return 0.0, "", nil
		case KindList, KindJSON:
			return nil, "", nil
		}
		if f.Nullable {
			return nil, "", nil
		}
		return "", "", nil
	}

	switch f.Kind {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, "must be a whole number", err
		}
		return n, "", nil
	case KindFloat:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, "must be a number", err
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, "must be a finite number", nil
		}
		return n, "", nil
	case KindDate:
		if _, err := time.Parse(time.DateOnly, raw); err != nil {
			return nil, "must be a date (YYYY-MM-DD)", err
		}
	case KindTime:
		if _, err := time.Parse("15:04", raw); err != nil {
			if _, err2 := time.Parse(time.TimeOnly, raw); err2 != nil {
				return nil, "must be a time (HH:MM)", err
			}
		}
	case KindEmail:
		if _, err := mail.ParseAddress(raw); err != nil {
			return nil, "must be an email address", err
		}
	case KindList:
		tokens := listItems(raw)
		if len(tokens) == 0 {
			if f.Required {
				return nil, "is required", nil
			}
			return nil, "", nil
		}
		return tokens, "", nil
	case KindJSON:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, "must be valid JSON", err
		}
		return v, "", nil
	}
	return raw, "", nil
}

// listItems accepts a JSON array of strings as well as comma separated
// input, so items containing commas survive.
func listItems(raw string) []string {
	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			out := make([]string, 0, len(items))
			for _, item := range items {
				if item = strings.TrimSpace(item); item != "" {
					out = append(out, item)
				}
			}
			return out
		}
	}
	return SplitList(raw)
}

// SplitList splits comma separated input into trimmed, non-empty tokens.
func SplitList(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func formatValue(f Field, v any) string {
	if v == nil {
		return ""
	}
	if f.Kind == KindJSON {
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, fmt.Sprint(e))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

func lookup(doc map[string]any, path string) any {
	var cur any = doc
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func setPath(doc map[string]any, path string, v any) {
	keys := strings.Split(path, ".")
	m := doc
	for _, key := range keys[:len(keys)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[key] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = v
}
