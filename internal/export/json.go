package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func init() {
	Register(JSON{})
	Register(Native{})
}

// valueKey holds a token's value when its name is also a group.
const valueKey = "$value"

// JSON writes web values nested by name segment.
type JSON struct{}

func (JSON) Format() string    { return "json" }
func (JSON) Extension() string { return ".json" }

func (JSON) Export(w io.Writer, r *theme.Resolved, opts Options) error {
	entries, err := resolveAll(r, platform.Web, opts)
	if err != nil {
		return err
	}
	root := make(map[string]any)
	for _, e := range entries {
		insert(root, strings.Split(e.Name, "."), e.Value)
	}
	return writeJSON(w, root)
}

// insert places v at path, moving a leaf under valueKey when it turns out
// to be a group.
func insert(node map[string]any, path []string, v any) {
	for _, seg := range path[:len(path)-1] {
		switch child := node[seg].(type) {
		case map[string]any:
			node = child
		case nil:
			next := make(map[string]any)
			node[seg] = next
			node = next
		default:
			next := map[string]any{valueKey: child}
			node[seg] = next
			node = next
		}
	}
	last := path[len(path)-1]
	if group, ok := node[last].(map[string]any); ok {
		group[valueKey] = v
		return
	}
	node[last] = v
}

// Native writes a flat object of camelCase keys to native values.
type Native struct{}

func (Native) Format() string    { return "native" }
func (Native) Extension() string { return ".json" }

func (Native) Export(w io.Writer, r *theme.Resolved, opts Options) error {
	entries, err := resolveAll(r, platform.Native, opts)
	if err != nil {
		return err
	}
	out := make(map[string]any, len(entries))
	origin := make(map[string]string, len(entries))
	for _, e := range entries {
		key := CamelKey(e.Name)
		if prev, dup := origin[key]; dup {
			return fmt.Errorf("tokens %q and %q both map to key %q", prev, e.Name, key)
		}
		origin[key] = e.Name
		out[key] = e.Value
	}
	return writeJSON(w, out)
}

// CamelKey returns the native style key for a token name:
// "color.surface.base" becomes "colorSurfaceBase".
func CamelKey(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	})
	if len(parts) == 0 {
		return ""
	}
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(title.String(p))
	}
	return b.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
