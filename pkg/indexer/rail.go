package indexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Alphabet is the letter rail shown beside a sectioned list.
var Alphabet = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

// RailEntry is one letter on the rail. Position is meaningful only when
// Enabled is true.
type RailEntry struct {
	Letter   string `json:"letter"`
	Position int    `json:"position"`
	Enabled  bool   `json:"enabled"`
}

// Rail resolves every letter of alphabet against the result's jump index.
// Letters without a section come back disabled so a UI can dim them.
// A nil alphabet means Alphabet.
func Rail(res Result, alphabet []string) []RailEntry {
	if alphabet == nil {
		alphabet = Alphabet
	}
	entries := make([]RailEntry, 0, len(alphabet))
	for _, letter := range alphabet {
		pos, ok := ResolveJump(res.JumpIndex, letter)
		entries = append(entries, RailEntry{Letter: letter, Position: pos, Enabled: ok})
	}
	return entries
}

// ParseLetter turns user input into a jump letter: surrounding space is
// trimmed and a single rune is upper-cased so "z" reaches the "Z" section.
// It reports false for anything that is not exactly one rune.
func ParseLetter(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) != 1 {
		return s, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s, false
	}
	return string(unicode.ToUpper(r)), true
}
