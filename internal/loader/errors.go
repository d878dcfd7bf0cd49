package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseError reports a problem in a definition file.
type ParseError struct {
	File    string
	Line    int
	Path    string // token path, when known
	Message string
}

func (e *ParseError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", loc, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

func newParseError(file string, node *yaml.Node, path, format string, args ...any) *ParseError {
	e := &ParseError{File: file, Path: path, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		e.Line = node.Line
	}
	return e
}

// DuplicateFileTokenError is returned when two files define the same token.
type DuplicateFileTokenError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateFileTokenError) Error() string {
	return fmt.Sprintf("token %q is defined in both %s and %s", e.Name, e.First, e.Second)
}

// DuplicateThemeError is returned when two theme files share a name.
type DuplicateThemeError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateThemeError) Error() string {
	return fmt.Sprintf("theme %q is defined in both %s and %s", e.Name, e.First, e.Second)
}
