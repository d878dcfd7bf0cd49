package token

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"color", CategoryColor, false},
		{"COLOR", CategoryColor, false},
		{"zIndex", CategoryZIndex, false},
		{"z-index", CategoryZIndex, false},
		{"z_index", CategoryZIndex, false},
		{" spacing ", CategorySpacing, false},
		{"font", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"color.primary.500", false},
		{"spacing.md", false},
		{"font_family.body-alt", false},
		{"", true},
		{"color..primary", true},
		{".color", true},
		{"color.", true},
		{"color.primary 500", true},
		{"color.{primary}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseRef(t *testing.T) {
	name, ok := ParseRef("{color.primary.500}")
	assert.True(t, ok)
	assert.Equal(t, "color.primary.500", name)

	name, ok = ParseRef(" { spacing.md } ")
	assert.True(t, ok)
	assert.Equal(t, "spacing.md", name)

	for _, s := range []string{"#fff", "{}", "{bad name}", "color.primary", "{color.primary"} {
		_, ok := ParseRef(s)
		assert.False(t, ok, "ParseRef(%q) should not match", s)
	}
}

func TestCategoryFromName(t *testing.T) {
	c, ok := CategoryFromName("color.surface.base")
	assert.True(t, ok)
	assert.Equal(t, CategoryColor, c)

	c, ok = CategoryFromName("zindex.modal")
	assert.True(t, ok)
	assert.Equal(t, CategoryZIndex, c)

	_, ok = CategoryFromName("button.background")
	assert.False(t, ok)
}

func TestPrimitive_Parse(t *testing.T) {
	p := Parse("{color.black}")
	ref, ok := p.AsRef()
	assert.True(t, ok)
	assert.Equal(t, "color.black", ref)

	p = Parse("#3B82F6")
	s, ok := p.AsString()
	assert.True(t, ok)
	assert.Equal(t, "#3B82F6", s)
	assert.Equal(t, KindString, p.Kind())
}

func TestPrimitive_References(t *testing.T) {
	p := Shadow(
		ShadowLayer{OffsetY: 1, Blur: 2, Color: "{color.shadow}"},
		ShadowLayer{OffsetY: 4, Blur: 8, Color: "#00000033"},
	)
	assert.Equal(t, []string{"color.shadow"}, p.References())
	assert.Equal(t, []string{"color.a"}, Ref("color.a").References())
	assert.Nil(t, Number(4).References())
}

func TestPrimitive_Equal(t *testing.T) {
	assert.True(t, Number(8).Equal(Number(8)))
	assert.False(t, Number(8).Equal(Number(12)))
	assert.False(t, Number(8).Equal(String("8")))
	assert.True(t, Typo(Typography{FontSize: 16}).Equal(Typo(Typography{FontSize: 16})))
	assert.False(t, Shadow(ShadowLayer{Blur: 1}).Equal(Shadow(ShadowLayer{Blur: 2})))
	assert.True(t, Primitive{}.Equal(Primitive{}))
}

func TestPrimitive_ShadowIsCopied(t *testing.T) {
	layers := []ShadowLayer{{Blur: 4, Color: "#000"}}
	p := Shadow(layers...)
	layers[0].Blur = 99

	got, ok := p.AsShadow()
	require.True(t, ok)
	assert.Equal(t, float64(4), got[0].Blur)

	got[0].Blur = 50
	again, _ := p.AsShadow()
	assert.Equal(t, float64(4), again[0].Blur, "AsShadow must return a copy")
}

func TestPrimitive_String(t *testing.T) {
	assert.Equal(t, "12", Number(12).String())
	assert.Equal(t, "0.5", Number(0.5).String())
	assert.Equal(t, `"#fff"`, String("#fff").String())
	assert.Equal(t, "{color.a}", Ref("color.a").String())
	assert.Equal(t, "shadow(0 2 4 0 #000)", Shadow(ShadowLayer{OffsetY: 2, Blur: 4, Color: "#000"}).String())
	assert.Equal(t, "<invalid>", Primitive{}.String())
}

func TestToken_ValueFor(t *testing.T) {
	tok := Token{
		Name:     "color.surface.base",
		Category: CategoryColor,
		Value:    String("#FFFFFF"),
		Platforms: map[string]Primitive{
			"native": String("#FAFAFA"),
		},
	}

	v, ok := tok.ValueFor("native")
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "#FAFAFA", s)

	v, ok = tok.ValueFor("web")
	require.True(t, ok)
	s, _ = v.AsString()
	assert.Equal(t, "#FFFFFF", s)

	platformOnly := Token{Name: "a.b", Category: CategoryColor, Platforms: map[string]Primitive{"web": String("#000")}}
	_, ok = platformOnly.ValueFor("native")
	assert.False(t, ok)
}

func TestToken_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tok     Token
		wantErr bool
	}{
		{"valid", Token{Name: "spacing.sm", Category: CategorySpacing, Value: Number(8)}, false},
		{"platform only", Token{Name: "spacing.sm", Category: CategorySpacing, Platforms: map[string]Primitive{"web": Number(8)}}, false},
		{"bad name", Token{Name: "spacing..sm", Category: CategorySpacing, Value: Number(8)}, true},
		{"bad category", Token{Name: "spacing.sm", Category: "size", Value: Number(8)}, true},
		{"no value", Token{Name: "spacing.sm", Category: CategorySpacing}, true},
		{"empty platform value", Token{Name: "spacing.sm", Category: CategorySpacing, Platforms: map[string]Primitive{"web": {}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tok.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidToken))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToken_CloneIsDeep(t *testing.T) {
	tok := Token{Name: "a.b", Category: CategoryColor, Platforms: map[string]Primitive{"web": String("#000")}}
	c := tok.Clone()
	c.Platforms["web"] = String("#fff")

	v, _ := tok.ValueFor("web")
	s, _ := v.AsString()
	assert.Equal(t, "#000", s)
}

func TestNewSet(t *testing.T) {
	s, err := NewSet(
		Token{Name: "spacing.md", Category: CategorySpacing, Value: Number(16)},
		Token{Name: "color.primary.500", Category: CategoryColor, Value: String("#3B82F6")},
		Token{Name: "spacing.sm", Category: CategorySpacing, Value: Number(8)},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"color.primary.500", "spacing.md", "spacing.sm"}, s.Names())
	assert.Equal(t, []Category{CategoryColor, CategorySpacing}, s.Categories())
	assert.Len(t, s.ByCategory(CategorySpacing), 2)
	assert.True(t, s.Has("spacing.sm"))
	assert.False(t, s.Has("spacing.xl"))
}

func TestNewSet_Duplicate(t *testing.T) {
	_, err := NewSet(
		Token{Name: "spacing.md", Category: CategorySpacing, Value: Number(16)},
		Token{Name: "spacing.md", Category: CategorySpacing, Value: Number(20)},
	)
	require.Error(t, err)

	var dup *DuplicateTokenError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "spacing.md", dup.Name)
	assert.True(t, errors.Is(err, ErrDuplicateToken))
}

func TestSet_Lookup(t *testing.T) {
	s := MustNewSet(Token{Name: "spacing.md", Category: CategorySpacing, Value: Number(16)})

	tok, err := s.Lookup("spacing.md")
	require.NoError(t, err)
	assert.Equal(t, "spacing.md", tok.Name)

	_, err = s.Lookup("spacing.xl")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownToken))
	assert.Contains(t, err.Error(), "spacing.xl")
}

func TestSet_Immutable(t *testing.T) {
	src := Token{Name: "a.b", Category: CategoryColor, Platforms: map[string]Primitive{"web": String("#000")}}
	s := MustNewSet(src)

	src.Platforms["web"] = String("#fff")
	got, _ := s.Get("a.b")
	v, _ := got.ValueFor("web")
	str, _ := v.AsString()
	assert.Equal(t, "#000", str, "set must not alias caller maps")

	got.Platforms["web"] = String("#111")
	again, _ := s.Get("a.b")
	v, _ = again.ValueFor("web")
	str, _ = v.AsString()
	assert.Equal(t, "#000", str, "Get must return a copy")
}

func TestSet_Equal(t *testing.T) {
	a := MustNewSet(Token{Name: "spacing.sm", Category: CategorySpacing, Value: Number(8)})
	b := MustNewSet(Token{Name: "spacing.sm", Category: CategorySpacing, Value: Number(8)})
	c := MustNewSet(Token{Name: "spacing.sm", Category: CategorySpacing, Value: Number(12)})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, (*Set)(nil).Equal(MustNewSet()))
}

func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, `unknown token "a.b"`, (&UnknownTokenError{Name: "a.b"}).Error())
	assert.Equal(t, `unknown token "a.b" (referenced by "c.d")`, (&UnknownTokenError{Name: "a.b", Referrer: "c.d"}).Error())
	assert.Equal(t, `override "dark": invalid key(s) unknownKey: not defined in base token set`,
		(&InvalidOverrideKeyError{Override: "dark", Keys: []string{"unknownKey"}}).Error())
	assert.Equal(t, "alias cycle detected: a.x -> a.y -> a.x", (&AliasCycleError{Path: []string{"a.x", "a.y", "a.x"}}).Error())
}
