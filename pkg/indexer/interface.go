package indexer

// Option is one selectable catalog entry.
type Option struct {
	// ID is an opaque identifier, unique across the catalog and never reused.
	ID string `json:"id" yaml:"id"`

	// Label is the display text. It is the sort and grouping key.
	Label string `json:"label" yaml:"label"`

	// Description is optional secondary text (condition blurbs, category paths).
	// It takes no part in filtering, sorting or grouping.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Section is a contiguous run of options sharing a heading.
type Section struct {
	// Heading is the upper-cased first character of every member's folded label.
	Heading string `json:"heading"`

	// Members are ordered case-insensitively by label; ties keep catalog order.
	Members []Option `json:"members"`
}

// JumpIndex maps a section heading to its zero-based position in Result.Sections.
// Headings without a section are absent, never mapped to a sentinel.
type JumpIndex map[string]int

// Result is the output of one FilterAndGroup call.
type Result struct {
	Sections  []Section `json:"sections"`
	JumpIndex JumpIndex `json:"jump_index"`
}

// Len returns the number of options across all sections.
func (r Result) Len() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Members)
	}
	return n
}

// Flatten returns all members in display order.
func (r Result) Flatten() []Option {
	out := make([]Option, 0, r.Len())
	for _, s := range r.Sections {
		out = append(out, s.Members...)
	}
	return out
}
