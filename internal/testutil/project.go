package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// BaseTokensYAML is a small base token set used across package tests.
const BaseTokensYAML = `color:
  primary:
    500:
      $value: "#3B82F6"
      $description: Brand primary
  surface:
    base:
      $value: "#FFFFFF"
      $platforms:
        native: "#FAFAFA"
  text: "#111827"
  button:
    bg: "{color.primary.500}"
spacing:
  sm: 8
  md: 16
  lg: 1.5rem
radius:
  md: 6
shadow:
  card:
    - offsetY: 2
      blur: 8
      color: "rgba(0, 0, 0, 0.2)"
typography:
  body:
    fontFamily: Inter
    fontSize: 16
    lineHeight: 1.5
zIndex:
  modal: 100
animation:
  duration:
    fast: 150ms
`

// DarkThemeYAML overrides surface and text colours.
const DarkThemeYAML = `name: dark
description: Dark surfaces
tokens:
  color:
    surface:
      base: "#0B0B0F"
    text: "#F9FAFB"
`

// CompactThemeYAML tightens spacing.
const CompactThemeYAML = `tokens:
  spacing:
    sm: 4
    md: 12
`

// WriteFiles writes files (relative path -> content) under dir.
func WriteFiles(t testing.TB, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// SetupTestProject creates a temporary project with tokens/ and themes/
// directories holding the fixtures above, and returns its root.
func SetupTestProject(t testing.TB) string {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, map[string]string{
		"tokens/base.yaml":   BaseTokensYAML,
		"tokens/README.md":   "# tokens",
		"themes/dark.yaml":   DarkThemeYAML,
		"themes/compact.yml": CompactThemeYAML,
		"themes/.draft.yaml": "not: [valid",
		"leaptoken.yaml":     "tokens_dir: tokens\nthemes_dir: themes\n",
	})
	return root
}
