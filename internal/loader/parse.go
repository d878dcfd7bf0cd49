// Package loader reads token and theme definition files.
//
// Definition files are YAML or JSON. Nested mappings form dot-path token
// names; a leaf is a scalar, a list of shadow layers, or a mapping with
// "$value" and/or "$platforms". "$type" sets the category of a token or of
// every token under a group, and "$description" documents a token.
package loader

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/leapstack-labs/leaptoken/pkg/token"
	"gopkg.in/yaml.v3"
)

// Reserved keys.
const (
	keyValue       = "$value"
	keyPlatforms   = "$platforms"
	keyType        = "$type"
	keyDescription = "$description"
)

var (
	shadowKeys     = []string{"offsetX", "offsetY", "blur", "spread", "color", "inset"}
	typographyKeys = []string{"fontFamily", "fontSize", "fontWeight", "lineHeight", "letterSpacing"}
)

// ParseTokens parses a token definition file. Categories come from "$type"
// or, failing that, from the first path segment.
func ParseTokens(file string, data []byte) ([]token.Token, error) {
	root, err := decode(file, data)
	if err != nil || root == nil {
		return nil, err
	}
	p := &parser{file: file, inferCategory: true}
	if err := p.walk(root, nil, ""); err != nil {
		return nil, err
	}
	return p.tokens, nil
}

// ParseTheme parses a theme override file of the form
// {name, description, tokens}. The name defaults to the file stem.
// Override tokens carry a category only when "$type" sets one; otherwise
// they inherit the base token's on composition.
func ParseTheme(file string, data []byte) (theme.Override, error) {
	o := theme.Override{Name: stem(file)}
	root, err := decode(file, data)
	if err != nil || root == nil {
		return o, err
	}
	if root.Kind != yaml.MappingNode {
		return o, newParseError(file, root, "", "theme file must be a mapping")
	}

	var tokensNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		switch k.Value {
		case "name":
			if v.Value != "" {
				o.Name = v.Value
			}
		case "description":
			o.Description = v.Value
		case "tokens":
			tokensNode = v
		default:
			return o, newParseError(file, k, "", "unknown field %q in theme file", k.Value)
		}
	}
	if tokensNode == nil {
		return o, nil
	}

	p := &parser{file: file}
	if err := p.walk(tokensNode, nil, ""); err != nil {
		return o, err
	}
	o.Tokens = p.tokens
	return o, nil
}

func decode(file string, data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{File: file, Message: "invalid YAML: " + err.Error()}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

func stem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type parser struct {
	file          string
	inferCategory bool
	tokens        []token.Token
}

func (p *parser) walk(node *yaml.Node, path []string, inherited token.Category) error {
	name := token.Join(path...)
	if node.Kind != yaml.MappingNode {
		if len(path) == 0 {
			return newParseError(p.file, node, "", "definition file must be a mapping")
		}
		return p.leaf(node, path, inherited)
	}
	if hasKey(node, keyValue) || hasKey(node, keyPlatforms) {
		if len(path) == 0 {
			return newParseError(p.file, node, "", "%s is not allowed at the top level", keyValue)
		}
		return p.leafMapping(node, path, inherited)
	}
	if isComposite(node) && len(path) > 0 {
		return p.leaf(node, path, inherited)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		switch k.Value {
		case keyType:
			c, err := token.ParseCategory(v.Value)
			if err != nil {
				return newParseError(p.file, v, name, "%v", err)
			}
			inherited = c
		case keyDescription:
		default:
			if strings.HasPrefix(k.Value, "$") {
				return newParseError(p.file, k, name, "unknown directive %q", k.Value)
			}
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if strings.HasPrefix(k.Value, "$") {
			continue
		}
		if err := p.walk(v, append(slices.Clone(path), k.Value), inherited); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) leafMapping(node *yaml.Node, path []string, inherited token.Category) error {
	name := token.Join(path...)
	var (
		valueNode, platformsNode *yaml.Node
		description              string
		category                 = inherited
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		switch k.Value {
		case keyValue:
			valueNode = v
		case keyPlatforms:
			platformsNode = v
		case keyDescription:
			description = v.Value
		case keyType:
			c, err := token.ParseCategory(v.Value)
			if err != nil {
				return newParseError(p.file, v, name, "%v", err)
			}
			category = c
		default:
			return newParseError(p.file, k, name, "unexpected key %q in token definition", k.Value)
		}
	}

	tok := token.Token{Name: name, Description: description}
	if valueNode != nil {
		v, err := p.value(valueNode, name)
		if err != nil {
			return err
		}
		tok.Value = v
	}
	if platformsNode != nil {
		if platformsNode.Kind != yaml.MappingNode {
			return newParseError(p.file, platformsNode, name, "%s must be a mapping", keyPlatforms)
		}
		tok.Platforms = make(map[string]token.Primitive, len(platformsNode.Content)/2)
		for i := 0; i+1 < len(platformsNode.Content); i += 2 {
			k, v := platformsNode.Content[i], platformsNode.Content[i+1]
			prim, err := p.value(v, name)
			if err != nil {
				return err
			}
			tok.Platforms[strings.ToLower(k.Value)] = prim
		}
	}
	return p.add(node, tok, category)
}

func (p *parser) leaf(node *yaml.Node, path []string, category token.Category) error {
	name := token.Join(path...)
	v, err := p.value(node, name)
	if err != nil {
		return err
	}
	return p.add(node, token.Token{Name: name, Value: v}, category)
}

func (p *parser) add(node *yaml.Node, tok token.Token, category token.Category) error {
	if err := token.ValidateName(tok.Name); err != nil {
		return newParseError(p.file, node, tok.Name, "%v", err)
	}
	if category == "" && p.inferCategory {
		c, ok := token.CategoryFromName(tok.Name)
		if !ok {
			return newParseError(p.file, node, tok.Name, "cannot infer category; set %s", keyType)
		}
		category = c
	}
	tok.Category = category
	if !tok.HasValue() {
		return newParseError(p.file, node, tok.Name, "token has no value")
	}
	p.tokens = append(p.tokens, tok)
	return nil
}

func (p *parser) value(node *yaml.Node, name string) (token.Primitive, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!int", "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return token.Primitive{}, newParseError(p.file, node, name, "invalid number %q", node.Value)
			}
			return token.Number(f), nil
		case "!!str":
			return token.Parse(node.Value), nil
		}
		return token.Primitive{}, newParseError(p.file, node, name, "unsupported value %q", node.Value)

	case yaml.MappingNode:
		switch {
		case hasAnyKey(node, shadowKeys):
			l, err := p.shadowLayer(node, name)
			if err != nil {
				return token.Primitive{}, err
			}
			return token.Shadow(l), nil
		case hasAnyKey(node, typographyKeys):
			return p.typography(node, name)
		}
		return token.Primitive{}, newParseError(p.file, node, name, "mapping is neither a shadow nor a typography value")

	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return token.Primitive{}, newParseError(p.file, node, name, "empty shadow list")
		}
		layers := make([]token.ShadowLayer, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.MappingNode {
				return token.Primitive{}, newParseError(p.file, item, name, "shadow layers must be mappings")
			}
			l, err := p.shadowLayer(item, name)
			if err != nil {
				return token.Primitive{}, err
			}
			layers = append(layers, l)
		}
		return token.Shadow(layers...), nil
	}
	return token.Primitive{}, newParseError(p.file, node, name, "unsupported value")
}

type shadowLayerYAML struct {
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
	Blur    float64 `yaml:"blur"`
	Spread  float64 `yaml:"spread"`
	Color   string  `yaml:"color"`
	Inset   bool    `yaml:"inset"`
}

type typographyYAML struct {
	FontFamily    string  `yaml:"fontFamily"`
	FontSize      float64 `yaml:"fontSize"`
	FontWeight    string  `yaml:"fontWeight"`
	LineHeight    float64 `yaml:"lineHeight"`
	LetterSpacing float64 `yaml:"letterSpacing"`
}

func (p *parser) shadowLayer(node *yaml.Node, name string) (token.ShadowLayer, error) {
	if err := p.checkKeys(node, name, shadowKeys); err != nil {
		return token.ShadowLayer{}, err
	}
	var l shadowLayerYAML
	if err := node.Decode(&l); err != nil {
		return token.ShadowLayer{}, newParseError(p.file, node, name, "invalid shadow: %v", err)
	}
	if l.Color == "" {
		return token.ShadowLayer{}, newParseError(p.file, node, name, "shadow layer needs a color")
	}
	return token.ShadowLayer(l), nil
}

func (p *parser) typography(node *yaml.Node, name string) (token.Primitive, error) {
	if err := p.checkKeys(node, name, typographyKeys); err != nil {
		return token.Primitive{}, err
	}
	var t typographyYAML
	if err := node.Decode(&t); err != nil {
		return token.Primitive{}, newParseError(p.file, node, name, "invalid typography: %v", err)
	}
	return token.Typo(token.Typography(t)), nil
}

func (p *parser) checkKeys(node *yaml.Node, name string, allowed []string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if k := node.Content[i]; !slices.Contains(allowed, k.Value) {
			return newParseError(p.file, k, name, "unexpected key %q (allowed: %s)", k.Value, strings.Join(allowed, ", "))
		}
	}
	return nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

func hasAnyKey(node *yaml.Node, keys []string) bool {
	for _, k := range keys {
		if hasKey(node, k) {
			return true
		}
	}
	return false
}

// isComposite reports whether a mapping is a bare shadow or typography
// value rather than a group of tokens. Only scalar fields qualify, so a
// scale like typography.fontSize.sm stays a group. "color" alone is a
// group name.
func isComposite(node *yaml.Node) bool {
	distinctive := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i].Value, node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return false
		}
		if !slices.Contains(shadowKeys, k) && !slices.Contains(typographyKeys, k) {
			return false
		}
		if k != "color" {
			distinctive = true
		}
	}
	return distinctive
}
