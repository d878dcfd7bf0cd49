package theme

import "github.com/leapstack-labs/leaptoken/pkg/token"

// Change is one token whose definition differs between two themes.
type Change struct {
	Name   string
	Before token.Token
	After  token.Token
}

// Diff returns the tokens whose shared value or platform values differ
// between old and next, in name order. Tokens present in only one theme
// are reported with a zero Before or After token.
func Diff(old, next *Resolved) []Change {
	var a, b *token.Set
	if old != nil {
		a = old.Set()
	}
	if next != nil {
		b = next.Set()
	}

	names := mergeNames(a.Names(), b.Names())
	var changes []Change
	for _, name := range names {
		ta, okA := a.Get(name)
		tb, okB := b.Get(name)
		if okA && okB && ta.Equal(tb) {
			continue
		}
		changes = append(changes, Change{Name: name, Before: ta, After: tb})
	}
	return changes
}

func mergeNames(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i] < b[j]):
			out = append(out, a[i])
			i++
		case i == len(a) || b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
