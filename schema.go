// FILE: lixenwraith/appconfig/schema.go
package appconfig

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// TagName is the struct tag consulted for field names and options.
const TagName = "conf"

// Field describes one declared configuration element: its key name,
// type descriptor and metadata. A field without the "required" tag
// option takes its default from the prototype struct passed to
// Introspect.
type Field struct {
	Name     string
	Desc     *Descriptor
	Required bool
	Secret   bool
	Help     string

	index int // struct field index at this nesting level
}

// Schema is the ordered sequence of fields introspected from a struct
// type. Order follows declaration order, which drives CLI help
// rendering; resolution correctness does not depend on it.
type Schema struct {
	Type   reflect.Type
	Fields []*Field
}

// shapeCache holds introspected schemas per struct type. A schema is a
// pure function of the type, so the cache never invalidates.
var shapeCache sync.Map // reflect.Type -> *Schema

// Introspect walks a struct type and returns its configuration schema.
// The argument may be a struct value or a pointer to one; it is only
// used to identify the type here, while Resolve reads default values
// from it. Fails with UnsupportedTypeError, DuplicatePathError or
// FieldOrderError when the declaration is not a valid schema.
func Introspect(prototype any) (*Schema, error) {
	v := reflect.ValueOf(prototype)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("schema prototype must be a non-nil struct or struct pointer, got %T", prototype)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema prototype must be a struct or struct pointer, got %T", prototype)
	}
	return schemaShape(v.Type())
}

func schemaShape(t reflect.Type) (*Schema, error) {
	if cached, ok := shapeCache.Load(t); ok {
		return cached.(*Schema), nil
	}

	sc := &Schema{Type: t}
	seen := make(map[string]bool)
	sawDefault := false

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		name := sf.Name
		var required, secret bool
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				switch opt {
				case "required":
					required = true
				case "secret":
					secret = true
				}
			}
		}
		if !isValidKeySegment(name) {
			return nil, fmt.Errorf("invalid key segment %q for field %s of %s", name, sf.Name, t)
		}
		if seen[name] {
			return nil, &DuplicatePathError{Path: name}
		}
		seen[name] = true

		desc, err := interpretType(sf.Name, sf.Type)
		if err != nil {
			return nil, err
		}
		if desc.Kind == KindNested && required {
			return nil, fmt.Errorf("field %s of %s: the required option applies to leaf fields only", sf.Name, t)
		}

		field := &Field{
			Name:     name,
			Desc:     desc,
			Required: required,
			Secret:   secret,
			Help:     sf.Tag.Get("help"),
			index:    i,
		}

		// Fields lacking a default must precede fields with one at
		// each nesting level.
		if lacksDefault(field) {
			if sawDefault {
				return nil, &FieldOrderError{Schema: t.String(), Field: name}
			}
		} else {
			sawDefault = true
		}

		sc.Fields = append(sc.Fields, field)
	}

	shapeCache.Store(t, sc)
	return sc, nil
}

// lacksDefault reports whether the field needs a value from some
// source: required leaves, and nested schemas containing any.
func lacksDefault(f *Field) bool {
	if f.Desc.Kind == KindNested {
		for _, sub := range f.Desc.Inner.Fields {
			if lacksDefault(sub) {
				return true
			}
		}
		return false
	}
	return f.Required
}

// leaf pairs a field with its flattened dotted path and, when the
// schema was bound to a prototype value, its default.
type leaf struct {
	field *Field
	path  string
	def   reflect.Value // invalid when unbound or field is required
}

// leaves flattens the schema into leaf fields in declaration order,
// recursing through nested schemas. v is the struct value supplying
// defaults; pass an invalid value when only the shape is needed.
func (sc *Schema) leaves(prefix string, v reflect.Value) []leaf {
	var out []leaf
	for _, f := range sc.Fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		var fv reflect.Value
		if v.IsValid() {
			fv = v.Field(f.index)
		}
		if f.Desc.Kind == KindNested {
			out = append(out, f.Desc.Inner.leaves(path, fv)...)
			continue
		}
		l := leaf{field: f, path: path}
		if fv.IsValid() && !f.Required {
			l.def = fv
		}
		out = append(out, l)
	}
	return out
}

// Paths returns the flattened dotted paths of all leaf fields in
// declaration order.
func (sc *Schema) Paths() []string {
	ls := sc.leaves("", reflect.Value{})
	paths := make([]string, len(ls))
	for i, l := range ls {
		paths[i] = l.path
	}
	return paths
}
