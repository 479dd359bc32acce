package roster

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Comparer orders two nicks. It returns a negative number when a sorts
// before b, zero when they are identical, and a positive number otherwise.
type Comparer interface {
	Compare(a, b string) int
}

// Comparer kinds accepted by NewComparer.
const (
	CompareFold    = "fold"
	CompareCollate = "collate"
)

// FoldComparer compares Unicode case-folded, NFC-normalized nicks by code
// point, so "aB" and "Ab" are equal at the first level and punctuation keeps
// its ASCII position ("[foo" < "_foo" < "Foo" < "{foo}"). Exact ties fall
// back to the raw strings.
func FoldComparer() Comparer {
	return foldComparer{}
}

// keyer is a Comparer whose first-level order is the byte order of a
// per-nick key, with exact ties broken by the raw nicks. Sort computes
// each key once instead of on every comparison.
type keyer interface {
	Key(nick string) string
}

type foldComparer struct{}

func (c foldComparer) Compare(a, b string) int {
	if r := strings.Compare(c.Key(a), c.Key(b)); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

// Key returns the NFC-normalized case fold of nick.
func (foldComparer) Key(nick string) string {
	// Casers carry state and are not safe for concurrent use.
	return cases.Fold().String(norm.NFC.String(nick))
}

// CollateComparer compares nicks with the Unicode Collation Algorithm tailored
// for tag, ignoring case at the first level. Punctuation is weighted by the
// CLDR root order rather than by code point.
func CollateComparer(tag language.Tag) Comparer {
	return &collateComparer{
		primary: collate.New(tag, collate.IgnoreCase),
		exact:   collate.New(tag),
	}
}

type collateComparer struct {
	mu      sync.Mutex
	primary *collate.Collator
	exact   *collate.Collator
}

func (c *collateComparer) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r := c.primary.CompareString(a, b); r != 0 {
		return r
	}
	if r := c.exact.CompareString(a, b); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

// NewComparer resolves a configured comparer kind. locale is only used by
// CompareCollate and defaults to the root locale when empty.
func NewComparer(kind, locale string) (Comparer, error) {
	switch kind {
	case "", CompareFold:
		return FoldComparer(), nil
	case CompareCollate:
		tag := language.Und
		if locale != "" {
			parsed, err := language.Parse(locale)
			if err != nil {
				return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
			}
			tag = parsed
		}
		return CollateComparer(tag), nil
	default:
		return nil, fmt.Errorf("unknown comparer %q (want %q or %q)", kind, CompareFold, CompareCollate)
	}
}
