package export

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
)

func init() {
	Register(CSS{})
	Register(SCSS{})
}

// CSS writes custom properties inside a selector block. Typography
// composites become one property per CSS property.
type CSS struct{}

func (CSS) Format() string    { return "css" }
func (CSS) Extension() string { return ".css" }

func (CSS) Export(w io.Writer, r *theme.Resolved, opts Options) error {
	entries, err := resolveAll(r, platform.Web, opts)
	if err != nil {
		return err
	}
	origin := make(map[string]string, len(entries))
	for _, e := range entries {
		for _, d := range declarations(VarName(e.Name), e.Value) {
			if err := claim(origin, d[0], e.Name); err != nil {
				return err
			}
		}
	}

	bw := bufio.NewWriter(w)
	if h := header(r); h != "" {
		fmt.Fprintf(bw, "/* %s */\n", h)
	}
	fmt.Fprintf(bw, "%s {\n", opts.Selector)
	for _, e := range entries {
		for _, d := range declarations(VarName(e.Name), e.Value) {
			fmt.Fprintf(bw, "  %s: %s;\n", d[0], d[1])
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// SCSS writes one variable per token. Typography composites become maps.
type SCSS struct{}

func (SCSS) Format() string    { return "scss" }
func (SCSS) Extension() string { return ".scss" }

func (SCSS) Export(w io.Writer, r *theme.Resolved, opts Options) error {
	entries, err := resolveAll(r, platform.Web, opts)
	if err != nil {
		return err
	}
	origin := make(map[string]string, len(entries))
	for _, e := range entries {
		if err := claim(origin, "$"+kebab(e.Name), e.Name); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(w)
	if h := header(r); h != "" {
		fmt.Fprintf(bw, "// %s\n", h)
	}
	for _, e := range entries {
		name := "$" + kebab(e.Name)
		switch v := e.Value.(type) {
		case map[string]string:
			fmt.Fprintf(bw, "%s: (\n", name)
			for _, k := range slices.Sorted(maps.Keys(v)) {
				fmt.Fprintf(bw, "  %s: %s,\n", k, v[k])
			}
			fmt.Fprintln(bw, ");")
		default:
			fmt.Fprintf(bw, "%s: %v;\n", name, v)
		}
	}
	return bw.Flush()
}

// claim records that owner holds name, failing if another token already does.
func claim(origin map[string]string, name, owner string) error {
	if prev, dup := origin[name]; dup && prev != owner {
		return fmt.Errorf("tokens %q and %q both map to %q", prev, owner, name)
	}
	origin[name] = owner
	return nil
}

// declarations flattens a web value into (property, value) pairs.
func declarations(prop string, v platform.Value) [][2]string {
	m, ok := v.(map[string]string)
	if !ok {
		return [][2]string{{prop, fmt.Sprint(v)}}
	}
	out := make([][2]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = append(out, [2]string{prop + "-" + k, m[k]})
	}
	return out
}
