package platform

import (
	"errors"
	"math"
	"testing"

	"github.com/leapstack-labs/leaptoken/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	Register("test_platform_internal", FormatterFunc(func(_ token.Category, _ token.Primitive, _ Options) (Value, error) {
		return "ok", nil
	}))

	assert.True(t, IsRegistered("test_platform_internal"))
	f, ok := Get("test_platform_internal")
	require.True(t, ok)

	v, err := f.Format(token.CategoryColor, token.String("#fff"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Contains(t, List(), "test_platform_internal")
}

func TestLookup_Unsupported(t *testing.T) {
	_, err := Lookup("android-legacy")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedPlatform))

	var upe *UnsupportedPlatformError
	require.True(t, errors.As(err, &upe))
	assert.Equal(t, "android-legacy", upe.Platform)
	assert.Contains(t, err.Error(), "android-legacy")
}

func TestParse(t *testing.T) {
	Register("test_parse_platform", FormatterFunc(func(token.Category, token.Primitive, Options) (Value, error) { return nil, nil }))

	p, err := Parse(" TEST_PARSE_PLATFORM ")
	require.NoError(t, err)
	assert.Equal(t, Platform("test_parse_platform"), p)

	_, err = Parse("android-legacy")
	assert.True(t, errors.Is(err, ErrUnsupportedPlatform))
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		input   string
		want    Dimension
		wantErr bool
	}{
		{"16px", Dimension{16, "px"}, false},
		{"1.5rem", Dimension{1.5, "rem"}, false},
		{"2em", Dimension{2, "em"}, false},
		{"50%", Dimension{50, "%"}, false},
		{"12", Dimension{12, ""}, false},
		{" 4 px", Dimension{4, "px"}, false},
		{"auto", Dimension{}, true},
		{"px", Dimension{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDimension(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDimension_Points(t *testing.T) {
	v, ok := Dimension{1.5, "rem"}.Points(16)
	assert.True(t, ok)
	assert.Equal(t, float64(24), v)

	v, ok = Dimension{12, "px"}.Points(16)
	assert.True(t, ok)
	assert.Equal(t, float64(12), v)

	_, ok = Dimension{50, "%"}.Points(16)
	assert.False(t, ok)
}

func TestParseDuration(t *testing.T) {
	ms, err := ParseDuration("200ms")
	require.NoError(t, err)
	assert.Equal(t, float64(200), ms)

	ms, err = ParseDuration("0.25s")
	require.NoError(t, err)
	assert.Equal(t, float64(250), ms)

	_, err = ParseDuration("ease-in")
	assert.Error(t, err)
}

func TestZIndex(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
		ok   bool
	}{
		{"integer", 100, 100, true},
		{"negative", -1, -1, true},
		{"max int32", math.MaxInt32, math.MaxInt32, true},
		{"fraction", 1.5, 0, false},
		{"too large", 1e20, 0, false},
		{"too small", -1e20, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ZIndex(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptions_Normalize(t *testing.T) {
	assert.Equal(t, float64(DefaultRemBase), Options{}.Normalize().RemBase)
	assert.Equal(t, float64(10), Options{RemBase: 10}.Normalize().RemBase)
}
