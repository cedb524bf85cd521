// FILE: lixenwraith/appconfig/type.go
package appconfig

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind classifies the declared type of a schema field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindEnum
	KindTuple
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "STR"
	case KindInt:
		return "INT"
	case KindFloat:
		return "FLOAT"
	case KindBool:
		return "BOOL"
	case KindEnum:
		return "ENUM"
	case KindTuple:
		return "TUPLE"
	case KindNested:
		return "NESTED"
	}
	return "INVALID"
}

// EnumMember is one named constant of an enumeration type.
type EnumMember struct {
	Name  string
	Value any
}

// Enum is implemented by enumeration types. EnumMembers must return the
// members in declaration order; each Value must be of the enum's own
// Go type.
type Enum interface {
	EnumMembers() []EnumMember
}

var enumType = reflect.TypeOf((*Enum)(nil)).Elem()

// Descriptor is the resolved classification of a field's declared type.
// Exactly one of the optional parts is populated, selected by Kind:
// Members for enumerations, Elem/Arity for tuples, Inner for nested
// schemas. Type always holds the concrete Go type of the field.
type Descriptor struct {
	Kind    Kind
	Type    reflect.Type
	Members []EnumMember // enumeration members, declaration order
	Elem    *Descriptor  // tuple element type, scalar or enum only
	Arity   int          // fixed tuple length; 0 means variadic
	Inner   *Schema      // nested sub-schema
}

// interpretType classifies a Go type as one of the supported descriptor
// kinds. Tuple element types must themselves be scalar or enumeration.
func interpretType(field string, t reflect.Type) (*Descriptor, error) {
	if t.Implements(enumType) {
		members := reflect.Zero(t).Interface().(Enum).EnumMembers()
		if len(members) == 0 {
			return nil, &UnsupportedTypeError{Field: field, Type: t}
		}
		for _, m := range members {
			if reflect.TypeOf(m.Value) != t {
				return nil, &UnsupportedTypeError{Field: field, Type: t}
			}
		}
		return &Descriptor{Kind: KindEnum, Type: t, Members: members}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return &Descriptor{Kind: KindString, Type: t}, nil
	case reflect.Bool:
		return &Descriptor{Kind: KindBool, Type: t}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Descriptor{Kind: KindInt, Type: t}, nil
	case reflect.Float32, reflect.Float64:
		return &Descriptor{Kind: KindFloat, Type: t}, nil
	case reflect.Array, reflect.Slice:
		elem, err := interpretType(field, t.Elem())
		if err != nil {
			return nil, &UnsupportedTypeError{Field: field, Type: t}
		}
		switch elem.Kind {
		case KindString, KindInt, KindFloat, KindBool, KindEnum:
		default:
			return nil, &UnsupportedTypeError{Field: field, Type: t}
		}
		arity := 0
		if t.Kind() == reflect.Array {
			arity = t.Len()
		}
		return &Descriptor{Kind: KindTuple, Type: t, Elem: elem, Arity: arity}, nil
	case reflect.Struct:
		inner, err := schemaShape(t)
		if err != nil {
			return nil, err
		}
		return &Descriptor{Kind: KindNested, Type: t, Inner: inner}, nil
	}
	return nil, &UnsupportedTypeError{Field: field, Type: t}
}

// typeString renders the descriptor as it appears in usage output,
// e.g. "INT INT" for a fixed pair or "[STR ...]" for a variadic tuple.
func (d *Descriptor) typeString() string {
	if d.Kind == KindBool {
		return "[BOOL]"
	}
	base := d
	count := 1
	if d.Kind == KindTuple {
		base = d.Elem
		count = d.Arity
	}
	name := base.Kind.String()
	if base.Kind == KindEnum || base.Kind == KindNested {
		name = base.Type.Name()
	}
	if count == 0 {
		return "[" + name + " ...]"
	}
	parts := make([]string, count)
	for i := range parts {
		parts[i] = name
	}
	return strings.Join(parts, " ")
}

// scalarString renders a scalar or enum value in the canonical form used
// for enum value matching and CLI argument generation. Enum values render
// by their underlying representation, never through a Stringer.
func scalarString(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
