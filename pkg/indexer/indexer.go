package indexer

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// fallbackHeading groups options whose label is empty.
const fallbackHeading = "#"

// keyed pairs an option with its precomputed comparison keys.
type keyed struct {
	opt     Option
	folded  string
	heading string
}

// FilterAndGroup filters catalog by query, sorts the survivors
// case-insensitively and partitions them into sections by first character.
//
// An empty query keeps every option. The result never contains an empty
// section and its JumpIndex holds exactly the headings present.
func FilterAndGroup(catalog []Option, query string) Result {
	// Casers carry state, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(query)

	kept := make([]keyed, 0, len(catalog))
	for _, opt := range catalog {
		folded := fold.String(opt.Label)
		if !strings.Contains(folded, needle) {
			continue
		}
		kept = append(kept, keyed{opt: opt, folded: folded, heading: headingOf(folded)})
	}

	// Ordering by heading first keeps sections ascending even for symbols that
	// sit between the upper and lower case ranges; for letters and digits it
	// is the same order as the folded label alone.
	slices.SortStableFunc(kept, func(a, b keyed) int {
		if c := strings.Compare(a.heading, b.heading); c != 0 {
			return c
		}
		return strings.Compare(a.folded, b.folded)
	})

	res := Result{
		Sections:  []Section{},
		JumpIndex: JumpIndex{},
	}
	for _, k := range kept {
		last := len(res.Sections) - 1
		if last >= 0 && res.Sections[last].Heading == k.heading {
			res.Sections[last].Members = append(res.Sections[last].Members, k.opt)
			continue
		}
		res.JumpIndex[k.heading] = len(res.Sections)
		res.Sections = append(res.Sections, Section{Heading: k.heading, Members: []Option{k.opt}})
	}
	return res
}

// ResolveJump returns the section position for letter, or false when no
// section carries that heading. Callers treat false as "do not scroll".
func ResolveJump(idx JumpIndex, letter string) (int, bool) {
	pos, ok := idx[letter]
	return pos, ok
}

// headingOf returns the upper-cased first rune of an already folded label.
func headingOf(folded string) string {
	r, size := utf8.DecodeRuneInString(folded)
	if size == 0 || r == utf8.RuneError {
		return fallbackHeading
	}
	return string(unicode.ToUpper(r))
}

// Indexer holds a catalog supplied once at construction.
// It keeps no derived state: every Query recomputes from the catalog.
type Indexer struct {
	catalog []Option
}

// New creates an Indexer over a private copy of catalog.
func New(catalog []Option) *Indexer {
	return &Indexer{catalog: slices.Clone(catalog)}
}

// Query runs FilterAndGroup over the indexer's catalog.
func (i *Indexer) Query(query string) Result {
	return FilterAndGroup(i.catalog, query)
}

// Catalog returns a copy of the catalog in its original order.
func (i *Indexer) Catalog() []Option {
	return slices.Clone(i.catalog)
}

// Size returns the number of options in the catalog.
func (i *Indexer) Size() int {
	return len(i.catalog)
}
