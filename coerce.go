// FILE: lixenwraith/appconfig/coerce.go
package appconfig

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// coerceValue converts a raw value from any source into the field's
// declared type. Raw values are strings, parsed file scalars
// (bool/int64/float64/json.Number), or lists of these.
func coerceValue(path string, raw any, d *Descriptor) (any, error) {
	switch d.Kind {
	case KindBool:
		return coerceBool(path, raw, d)
	case KindInt:
		return coerceInt(path, raw, d)
	case KindFloat:
		return coerceFloat(path, raw, d)
	case KindString:
		return coerceString(raw, d)
	case KindEnum:
		return coerceEnum(path, raw, d)
	case KindTuple:
		return coerceTuple(path, raw, d)
	}
	return nil, &ConversionError{Path: path, Raw: raw, Want: d.Type.String(),
		Reason: "nested schemas are resolved field by field, not coerced"}
}

func conversionErr(path string, raw any, d *Descriptor, reason string) error {
	return &ConversionError{Path: path, Raw: raw, Want: d.Type.String(), Reason: reason}
}

// coerceBool applies the first-letter rule to strings: t/y mean true,
// f/n mean false, case-insensitively. Parsed booleans pass through.
func coerceBool(path string, raw any, d *Descriptor) (any, error) {
	switch v := raw.(type) {
	case bool:
		return convertTo(reflect.ValueOf(v), d.Type), nil
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if s != "" {
			switch s[0] {
			case 't', 'y':
				return convertTo(reflect.ValueOf(true), d.Type), nil
			case 'f', 'n':
				return convertTo(reflect.ValueOf(false), d.Type), nil
			}
		}
		return nil, conversionErr(path, raw, d, "not a recognizable boolean")
	}
	return nil, conversionErr(path, raw, d, fmt.Sprintf("unexpected raw type %T", raw))
}

func coerceInt(path string, raw any, d *Descriptor) (any, error) {
	var n int64
	switch v := raw.(type) {
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, conversionErr(path, raw, d, "not an integer")
		}
		n = i
	case string:
		// Whitespace is trimmed so that CLI values prefixed with a
		// space (the negative-number workaround) still parse.
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, conversionErr(path, raw, d, "not a base-10 integer")
		}
		n = i
	default:
		rv := reflect.ValueOf(raw)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n = rv.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := rv.Uint()
			if u > uint64(1<<63-1) {
				return nil, conversionErr(path, raw, d, "integer overflow")
			}
			n = int64(u)
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			n = int64(f)
			if float64(n) != f {
				return nil, conversionErr(path, raw, d, "not an exact integer")
			}
		default:
			return nil, conversionErr(path, raw, d, fmt.Sprintf("unexpected raw type %T", raw))
		}
	}
	if reflect.Zero(d.Type).OverflowInt(n) {
		return nil, conversionErr(path, raw, d, "integer overflow")
	}
	return convertTo(reflect.ValueOf(n), d.Type), nil
}

func coerceFloat(path string, raw any, d *Descriptor) (any, error) {
	var f float64
	switch v := raw.(type) {
	case json.Number:
		x, err := v.Float64()
		if err != nil {
			return nil, conversionErr(path, raw, d, "not a number")
		}
		f = x
	case string:
		// strconv accepts "nan", "inf" and signed variants in any case.
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, conversionErr(path, raw, d, "not a floating-point number")
		}
		f = x
	default:
		rv := reflect.ValueOf(raw)
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(rv.Uint())
		default:
			return nil, conversionErr(path, raw, d, fmt.Sprintf("unexpected raw type %T", raw))
		}
	}
	return convertTo(reflect.ValueOf(f), d.Type), nil
}

func coerceString(raw any, d *Descriptor) (any, error) {
	if s, ok := raw.(string); ok {
		return convertTo(reflect.ValueOf(s), d.Type), nil
	}
	return convertTo(reflect.ValueOf(scalarString(raw)), d.Type), nil
}

// coerceEnum matches member names before member values, so a name that
// collides with another member's value still resolves by name.
func coerceEnum(path string, raw any, d *Descriptor) (any, error) {
	if reflect.TypeOf(raw) == d.Type {
		return raw, nil
	}
	s, ok := raw.(string)
	if !ok {
		s = scalarString(raw)
	}
	s = strings.TrimSpace(s)
	for _, m := range d.Members {
		if s == m.Name {
			return m.Value, nil
		}
	}
	for _, m := range d.Members {
		if s == scalarString(m.Value) {
			return m.Value, nil
		}
	}
	names := make([]string, len(d.Members))
	for i, m := range d.Members {
		names[i] = m.Name
	}
	return nil, conversionErr(path, raw, d,
		fmt.Sprintf("not a member of %s (valid: %s)", d.Type.Name(), strings.Join(names, ", ")))
}

func coerceTuple(path string, raw any, d *Descriptor) (any, error) {
	var items []any
	switch v := raw.(type) {
	case string:
		for _, tok := range splitTokens(v) {
			items = append(items, tok)
		}
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case []any:
		items = v
	default:
		rv := reflect.ValueOf(raw)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				items = append(items, rv.Index(i).Interface())
			}
		} else {
			items = []any{raw}
		}
	}

	if d.Arity > 0 && len(items) != d.Arity {
		return nil, conversionErr(path, raw, d,
			fmt.Sprintf("expected %d values, got %d", d.Arity, len(items)))
	}

	var out reflect.Value
	if d.Type.Kind() == reflect.Array {
		out = reflect.New(d.Type).Elem()
	} else {
		out = reflect.MakeSlice(d.Type, len(items), len(items))
	}
	for i, item := range items {
		coerced, err := coerceValue(path, item, d.Elem)
		if err != nil {
			return nil, err
		}
		out.Index(i).Set(reflect.ValueOf(coerced))
	}
	return out.Interface(), nil
}

func convertTo(v reflect.Value, t reflect.Type) any {
	if v.Type() == t {
		return v.Interface()
	}
	return v.Convert(t).Interface()
}

// splitTokens splits a whitespace-delimited list, honoring double-quoted
// tokens that may embed whitespace. Inside quotes, \" is a literal quote
// and \\ a literal backslash. An unterminated quote falls back to a
// plain token ending at the next whitespace.
func splitTokens(s string) []string {
	var tokens []string
	i := 0
	for i < len(s) {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}
		if s[i] == '"' {
			if tok, next, ok := scanQuoted(s, i); ok {
				tokens = append(tokens, tok)
				i = next
				continue
			}
		}
		start := i
		for i < len(s) && !isSpace(s[i]) {
			i++
		}
		tokens = append(tokens, s[start:i])
	}
	return tokens
}

func scanQuoted(s string, start int) (string, int, bool) {
	var b strings.Builder
	i := start + 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
				b.WriteByte(s[i+1])
				i += 2
				continue
			}
			b.WriteByte(s[i])
			i++
		case '"':
			return b.String(), i + 1, true
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return "", 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
