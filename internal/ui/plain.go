package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Aman-CERP/optindex/pkg/indexer"
)

// PlainPicker is a line-driven picker for pipes and CI. Each input line
// is one command:
//
//	text    filter by text (an empty line clears the filter)
//	/text   filter by text even when it is a number
//	:X      jump to the X section and list it
//	N       pick option N from the last listing; filter by N if there is none
//	:q      finish (cancel in single-select mode)
type PlainPicker struct {
	cfg  Config
	list *list
	// shown is the numbered listing the user last saw.
	shown []indexer.Option
}

// NewPlainPicker creates a plain text picker.
func NewPlainPicker(cfg Config) *PlainPicker {
	return &PlainPicker{cfg: cfg, list: newList(cfg.Catalog)}
}

// Pick reads commands until an option is picked or input ends.
func (p *PlainPicker) Pick(ctx context.Context) (Choice, error) {
	p.printHeader()
	p.printAll()

	sc := bufio.NewScanner(p.cfg.Input)
	for {
		if err := ctx.Err(); err != nil {
			return Choice{Cancelled: true}, err
		}
		p.printf("> ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return Choice{}, fmt.Errorf("picker input: %w", err)
			}
			return p.finish(), nil
		}

		line := strings.TrimSpace(sc.Text())
		switch {
		case line == ":q":
			return p.finish(), nil

		case strings.HasPrefix(line, ":"):
			p.jump(strings.TrimPrefix(line, ":"))

		case strings.HasPrefix(line, "/"):
			p.filter(strings.TrimPrefix(line, "/"))

		case isNumber(line) && p.inRange(line):
			n, _ := strconv.Atoi(line)
			opt := p.shown[n-1]
			if p.cfg.Colors == nil {
				return Choice{Option: opt}, nil
			}
			p.printf("colours: %s\n", strings.Join(p.cfg.Colors.Toggle(opt.Label), ", "))

		default:
			p.filter(line)
		}
	}
}

func (p *PlainPicker) filter(query string) {
	p.list.setQuery(query)
	p.printAll()
}

// inRange reports whether the number s names an option in the last listing.
func (p *PlainPicker) inRange(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= len(p.shown)
}

func (p *PlainPicker) finish() Choice {
	if p.cfg.Colors != nil {
		return Choice{Colors: p.cfg.Colors.Values()}
	}
	return Choice{Cancelled: true}
}

func (p *PlainPicker) printHeader() {
	title := p.cfg.Title
	if title == "" {
		title = "Select"
	}
	p.printf("%s (%d options)\n", title, p.list.idx.Size())
	p.printf("type to filter (/text for digits), :X jumps to a letter, a number picks, :q quits\n")
}

// printAll numbers every option in the current result.
func (p *PlainPicker) printAll() {
	p.shown = p.shown[:0]
	if len(p.list.res.Sections) == 0 {
		p.printf("no matches for %q\n", p.list.query)
		return
	}
	for _, s := range p.list.res.Sections {
		p.printSection(s)
	}
	p.printRail()
}

func (p *PlainPicker) jump(letter string) {
	letter = normalizeLetter(letter)
	pos, ok := p.list.jump(letter)
	if !ok {
		p.printf("no %s section\n", letter)
		return
	}
	p.shown = p.shown[:0]
	p.printSection(p.list.res.Sections[pos])
}

func (p *PlainPicker) printSection(s indexer.Section) {
	p.printf("%s\n", s.Heading)
	for _, m := range s.Members {
		p.shown = append(p.shown, m)
		mark := " "
		if p.cfg.Colors != nil && p.cfg.Colors.Contains(m.Label) {
			mark = "*"
		}
		p.printf("%s%3d) %s\n", mark, len(p.shown), m.Label)
	}
}

func (p *PlainPicker) printRail() {
	var parts []string
	for _, e := range p.list.rail(p.cfg.Alphabet) {
		if e.Enabled {
			parts = append(parts, e.Letter)
		}
	}
	p.printf("jump: %s\n", strings.Join(parts, " "))
}

func (p *PlainPicker) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out(), format, args...)
}

func (p *PlainPicker) out() io.Writer {
	if p.cfg.Output == nil {
		return io.Discard
	}
	return p.cfg.Output
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
