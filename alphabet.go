package glyphcast

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Alphabet data embedded at compile time
//
//go:embed alphabets/*.txt
var alphabetData embed.FS

// Alphabet is an ordered set of candidate characters for glyph
// matching. The order is significant: when two characters score
// identically under a metric, the one that appears earlier wins.
type Alphabet struct {
	chars []rune
	index map[rune]int
}

// ParseAlphabet builds an Alphabet from the characters of s, preserving
// their order. Newlines are skipped so alphabets can be read from text
// files. Duplicate characters and empty alphabets are rejected.
func ParseAlphabet(s string) (*Alphabet, error) {
	a := &Alphabet{index: make(map[rune]int)}
	for _, r := range s {
		if r == '\n' || r == '\r' {
			continue
		}
		if _, dup := a.index[r]; dup {
			return nil, fmt.Errorf("duplicate character %q in alphabet", string(r))
		}
		a.index[r] = len(a.chars)
		a.chars = append(a.chars, r)
	}
	if len(a.chars) == 0 {
		return nil, fmt.Errorf("alphabet is empty")
	}
	return a, nil
}

// LoadAlphabet resolves nameOrPath against the built-in alphabets
// first, then against the filesystem.
func LoadAlphabet(nameOrPath string) (*Alphabet, error) {
	if data, err := alphabetData.ReadFile("alphabets/" + nameOrPath + ".txt"); err == nil {
		return ParseAlphabet(string(data))
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("alphabet %q is neither built-in nor a readable file: %w", nameOrPath, err)
	}
	return ParseAlphabet(string(data))
}

// AlphabetNames returns the names of the built-in alphabets, sorted.
func AlphabetNames() []string {
	entries, err := alphabetData.ReadDir("alphabets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(names)
	return names
}

// Len returns the number of characters in the alphabet.
func (a *Alphabet) Len() int { return len(a.chars) }

// Chars returns a copy of the characters in order.
func (a *Alphabet) Chars() []rune {
	out := make([]rune, len(a.chars))
	copy(out, a.chars)
	return out
}

// Index returns the position of r in the alphabet, or -1 when absent.
func (a *Alphabet) Index(r rune) int {
	if i, ok := a.index[r]; ok {
		return i
	}
	return -1
}

// String returns the alphabet characters as a single string.
func (a *Alphabet) String() string { return string(a.chars) }
