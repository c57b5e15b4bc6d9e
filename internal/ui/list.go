package ui

import "github.com/Aman-CERP/optindex/pkg/indexer"

// row is one visible line: a section heading or an option under it.
type row struct {
	heading   string
	opt       indexer.Option
	isHeading bool
}

// list is the navigation state shared by both pickers. It owns the query
// and cursor; grouping is recomputed by the indexer on every query change.
type list struct {
	idx   *indexer.Indexer
	query string
	res   indexer.Result

	rows []row
	// sectionRow[i] is the row index of section i's heading.
	sectionRow []int
	// cursor is the row index of the highlighted option, -1 when empty.
	cursor int
}

func newList(catalog []indexer.Option) *list {
	l := &list{idx: indexer.New(catalog)}
	l.setQuery("")
	return l
}

// setQuery regroups and puts the cursor on the first option.
func (l *list) setQuery(q string) {
	l.query = q
	l.res = l.idx.Query(q)
	l.rows = l.rows[:0]
	l.sectionRow = l.sectionRow[:0]
	for _, s := range l.res.Sections {
		l.sectionRow = append(l.sectionRow, len(l.rows))
		l.rows = append(l.rows, row{heading: s.Heading, isHeading: true})
		for _, m := range s.Members {
			l.rows = append(l.rows, row{heading: s.Heading, opt: m})
		}
	}
	l.cursor = -1
	if len(l.rows) > 1 {
		l.cursor = 1
	}
}

// move steps the cursor by delta options, skipping headings, and stops at
// either end.
func (l *list) move(delta int) {
	if l.cursor < 0 {
		return
	}
	step := 1
	if delta < 0 {
		step, delta = -1, -delta
	}
	for ; delta > 0; delta-- {
		next := l.cursor + step
		for next >= 0 && next < len(l.rows) && l.rows[next].isHeading {
			next += step
		}
		if next < 0 || next >= len(l.rows) {
			return
		}
		l.cursor = next
	}
}

// jump moves the cursor to the first option of letter's section and
// returns the section position. Letters without a section leave the
// cursor where it is.
func (l *list) jump(letter string) (int, bool) {
	pos, ok := indexer.ResolveJump(l.res.JumpIndex, normalizeLetter(letter))
	if !ok {
		return 0, false
	}
	l.cursor = l.sectionRow[pos] + 1
	return pos, true
}

// current returns the highlighted option.
func (l *list) current() (indexer.Option, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return indexer.Option{}, false
	}
	return l.rows[l.cursor].opt, true
}

func (l *list) rail(alphabet []string) []indexer.RailEntry {
	return indexer.Rail(l.res, alphabet)
}

// normalizeLetter upper-cases a single-rune letter; other input passes
// through unchanged and will not resolve.
func normalizeLetter(s string) string {
	letter, _ := indexer.ParseLetter(s)
	return letter
}
