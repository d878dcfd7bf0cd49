package export

import (
	"io"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(YAML{})
}

// YAML writes a flat mapping of token name to web value, in name order.
type YAML struct{}

func (YAML) Format() string    { return "yaml" }
func (YAML) Extension() string { return ".yaml" }

func (YAML) Export(w io.Writer, r *theme.Resolved, opts Options) error {
	entries, err := resolveAll(r, platform.Web, opts)
	if err != nil {
		return err
	}
	doc := &yaml.Node{Kind: yaml.MappingNode}
	if h := header(r); h != "" {
		doc.HeadComment = h
	}
	for _, e := range entries {
		var v yaml.Node
		if err := v.Encode(e.Value); err != nil {
			return err
		}
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: e.Name}, &v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
