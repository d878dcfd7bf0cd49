package token

import (
	"slices"
	"sort"
)

// Set is an immutable collection of tokens with unique names.
// The zero value is an empty set.
type Set struct {
	tokens map[string]Token
	names  []string // sorted
}

// NewSet validates tokens and builds a Set from them.
// Duplicate names are rejected with DuplicateTokenError.
func NewSet(tokens ...Token) (*Set, error) {
	s := &Set{
		tokens: make(map[string]Token, len(tokens)),
		names:  make([]string, 0, len(tokens)),
	}
	for _, t := range tokens {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, exists := s.tokens[t.Name]; exists {
			return nil, &DuplicateTokenError{Name: t.Name}
		}
		s.tokens[t.Name] = t.Clone()
		s.names = append(s.names, t.Name)
	}
	sort.Strings(s.names)
	return s, nil
}

// MustNewSet is like NewSet but panics on error. Intended for static data and tests.
func MustNewSet(tokens ...Token) *Set {
	s, err := NewSet(tokens...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of tokens.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Has reports whether name is defined.
func (s *Set) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.tokens[name]
	return ok
}

// Get returns a copy of the named token.
func (s *Set) Get(name string) (Token, bool) {
	if s == nil {
		return Token{}, false
	}
	t, ok := s.tokens[name]
	if !ok {
		return Token{}, false
	}
	return t.Clone(), true
}

// Lookup is like Get but returns UnknownTokenError for a missing name.
func (s *Set) Lookup(name string) (Token, error) {
	t, ok := s.Get(name)
	if !ok {
		return Token{}, &UnknownTokenError{Name: name}
	}
	return t, nil
}

// Names returns all token names in sorted order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.names)
}

// Tokens returns copies of all tokens in name order.
func (s *Set) Tokens() []Token {
	if s == nil {
		return nil
	}
	out := make([]Token, len(s.names))
	for i, name := range s.names {
		out[i] = s.tokens[name].Clone()
	}
	return out
}

// ByCategory returns the tokens of category c in name order.
func (s *Set) ByCategory(c Category) []Token {
	var out []Token
	for _, t := range s.Tokens() {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the categories present in the set, in declaration order.
func (s *Set) Categories() []Category {
	present := make(map[Category]bool)
	if s != nil {
		for _, t := range s.tokens {
			present[t.Category] = true
		}
	}
	var out []Category
	for _, c := range allCategories {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}

// Equal reports whether s and o hold identical tokens.
func (s *Set) Equal(o *Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, name := range s.Names() {
		a := s.tokens[name]
		b, ok := o.tokens[name]
		if !ok || !a.Equal(b) {
			return false
		}
	}
	return true
}
