// FILE: lixenwraith/appconfig/argv.go
package appconfig

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/pflag"
)

// buildFlagSet synthesizes the option spec for a schema: one long
// option per leaf field named by its dotted path, hyphens accepted in
// place of underscores, boolean fields as zero-or-one-argument flags
// (--flag or --flag=value), tuple fields as repeatable options. Short
// aliases come from the caller's alias map first, then from the first
// letter of top-level fields when unambiguous.
func buildFlagSet(leaves []leaf, aliases map[string]string) (*pflag.FlagSet, error) {
	fs := pflag.NewFlagSet("appconfig", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}

	known := make(map[string]bool, len(leaves))
	for _, l := range leaves {
		known[l.path] = true
	}
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if !known[name] {
			if u := strings.ReplaceAll(name, "-", "_"); known[u] {
				return pflag.NormalizedName(u)
			}
		}
		return pflag.NormalizedName(name)
	})

	shorts, err := shortAliases(leaves, aliases)
	if err != nil {
		return nil, err
	}

	for _, l := range leaves {
		short := shorts[l.path]
		switch l.field.Desc.Kind {
		case KindBool:
			fs.StringP(l.path, short, "", l.field.Help)
			fs.Lookup(l.path).NoOptDefVal = "true"
		case KindTuple:
			fs.StringArrayP(l.path, short, nil, l.field.Help)
		default:
			fs.StringP(l.path, short, "", l.field.Help)
		}
	}
	return fs, nil
}

// shortAliases maps leaf paths to one-letter option names. Explicit
// aliases win; beyond that, a top-level field gets its first letter
// when no other field starts with the same letter. "h" stays reserved
// for help.
func shortAliases(leaves []leaf, aliases map[string]string) (map[string]string, error) {
	shorts := make(map[string]string)
	taken := map[string]bool{"h": true}
	for short, path := range aliases {
		if len(short) != 1 {
			return nil, fmt.Errorf("short option %q must be a single character", short)
		}
		if taken[short] {
			return nil, fmt.Errorf("short option %q assigned more than once", short)
		}
		shorts[path] = short
		taken[short] = true
	}

	letters := make(map[string]int)
	for _, l := range leaves {
		if !strings.Contains(l.path, ".") {
			letters[l.path[:1]]++
		}
	}
	for _, l := range leaves {
		if strings.Contains(l.path, ".") || shorts[l.path] != "" {
			continue
		}
		letter := l.path[:1]
		if letters[letter] == 1 && !taken[letter] {
			shorts[l.path] = letter
			taken[letter] = true
		}
	}
	return shorts, nil
}

// fromArgs parses command-line arguments against the synthesized option
// spec and yields raw candidates for every option actually set. Unknown
// flags are ignored; remaining positional arguments are returned.
func fromArgs(leaves []leaf, args []string, aliases map[string]string) ([]rawValue, []string, error) {
	fs, err := buildFlagSet(leaves, aliases)
	if err != nil {
		return nil, nil, err
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCLIParse, err)
	}

	var out []rawValue
	for _, l := range leaves {
		if !fs.Changed(l.path) {
			continue
		}
		var raw any
		if l.field.Desc.Kind == KindTuple {
			values, err := fs.GetStringArray(l.path)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrCLIParse, err)
			}
			raw = values
		} else {
			raw = fs.Lookup(l.path).Value.String()
		}
		out = append(out, rawValue{
			path: l.path,
			raw:  raw,
			prov: Provenance{Source: SourceCLI, Detail: "--" + l.path},
		})
	}
	return out, fs.Args(), nil
}

// Usage renders the option list for a schema in declaration order.
// Options with detailed help carry a (*) marker; OptionHelp returns the
// detail for one of them.
func Usage(sc *Schema, aliases map[string]string) string {
	leaves := sc.leaves("", reflect.Value{})
	shorts, err := shortAliases(leaves, aliases)
	if err != nil {
		shorts = nil
	}
	var b strings.Builder
	for _, l := range leaves {
		b.WriteString(optionLine(l, shorts))
		b.WriteByte('\n')
	}
	return b.String()
}

// OptionHelp returns the usage line and help text for a single option
// named by its dotted path (dashes accepted for underscores). The
// second return value is false when no such option exists.
func OptionHelp(sc *Schema, name string) (string, bool) {
	name = strings.ReplaceAll(name, "-", "_")
	for _, l := range sc.leaves("", reflect.Value{}) {
		if strings.ReplaceAll(l.path, "-", "_") != name {
			continue
		}
		line := optionLine(l, nil)
		if l.field.Help != "" {
			line += "\n" + l.field.Help
		}
		return line, true
	}
	return "", false
}

func optionLine(l leaf, shorts map[string]string) string {
	tstr := " " + l.field.Desc.typeString()
	forms := make([]string, 0, 3)
	if short := shorts[l.path]; short != "" {
		forms = append(forms, "-"+short+tstr)
	}
	forms = append(forms, "--"+l.path+tstr)
	if strings.Contains(l.path, "_") {
		forms = append(forms, "--"+strings.ReplaceAll(l.path, "_", "-")+tstr)
	}
	line := strings.Join(forms, ", ")
	if l.field.Help != "" {
		line += "  (*)"
	}
	return line
}

// ToArgs renders a configuration instance as a flat list of
// command-line arguments that reproduce it. Every option uses the
// --name=value form; tuple fields repeat the option per element and
// negative numbers carry a leading space so no parser mistakes them
// for options.
func ToArgs(instance any) ([]string, error) {
	argMap, order, err := toArgValues(instance)
	if err != nil {
		return nil, err
	}
	var args []string
	for _, opt := range order {
		for _, v := range argMap[opt] {
			args = append(args, opt+"="+v)
		}
	}
	return args, nil
}

// ToArgMap renders a configuration instance as a mapping of long option
// name to its argument values.
func ToArgMap(instance any) (map[string][]string, error) {
	argMap, _, err := toArgValues(instance)
	return argMap, err
}

func toArgValues(instance any) (map[string][]string, []string, error) {
	sc, err := Introspect(instance)
	if err != nil {
		return nil, nil, err
	}
	v := reflect.ValueOf(instance)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	out := make(map[string][]string)
	var order []string
	for _, l := range sc.leaves("", v) {
		fv := l.def
		if l.field.Required {
			// Required leaves carry no default, read the value directly.
			fv = fieldByPath(v, sc, l.path)
		}
		values, err := argStrings(fv, l.field.Desc)
		if err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", l.path, err)
		}
		opt := "--" + l.path
		out[opt] = values
		order = append(order, opt)
	}
	return out, order, nil
}

func fieldByPath(v reflect.Value, sc *Schema, path string) reflect.Value {
	segments := strings.Split(path, ".")
	current := sc
	for _, segment := range segments {
		for _, f := range current.Fields {
			if f.Name != segment {
				continue
			}
			v = v.Field(f.index)
			current = f.Desc.Inner
			break
		}
	}
	return v
}

func argStrings(v reflect.Value, d *Descriptor) ([]string, error) {
	switch d.Kind {
	case KindTuple:
		values := make([]string, v.Len())
		for i := range values {
			s, err := argScalar(v.Index(i), d.Elem)
			if err != nil {
				return nil, err
			}
			values[i] = s
		}
		return values, nil
	default:
		s, err := argScalar(v, d)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func argScalar(v reflect.Value, d *Descriptor) (string, error) {
	if d.Kind == KindEnum {
		for _, m := range d.Members {
			if scalarString(m.Value) == scalarString(v.Interface()) {
				return m.Name, nil
			}
		}
		return "", fmt.Errorf("value %v is not a declared member of %s", v, d.Type.Name())
	}
	s := scalarString(v.Interface())
	// Numeric coercion trims whitespace, so only numbers get the guard
	// against being mistaken for an option. Strings keep their exact
	// value, leading dash included.
	if (d.Kind == KindInt || d.Kind == KindFloat) && strings.HasPrefix(s, "-") {
		s = " " + s
	}
	return s, nil
}
