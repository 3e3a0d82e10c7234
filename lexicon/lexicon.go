// Package lexicon implements the dictionary lookup structure used by the segmenter:
// a prefix trie keyed by code point.
//
// A Lexicon is populated once and is read-only afterwards, so a built Lexicon can be
// shared by any number of goroutines without locking.
package lexicon

import (
	"sort"
	"unicode/utf8"
)

type node struct {
	children map[rune]*node
	terminal bool
}

func (n *node) child(r rune) *node {
	if n.children == nil {
		return nil
	}
	return n.children[r]
}

// Lexicon is a set of dictionary words stored as a trie.
// The zero value is an empty lexicon ready to use.
type Lexicon struct {
	root       node
	count      int
	maxWordLen int
}

// New returns an empty lexicon.
func New() *Lexicon {
	return &Lexicon{}
}

// Build creates a lexicon from words. Empty strings are skipped.
func Build(words []string) *Lexicon {
	l := New()
	for _, word := range words {
		l.Insert(word)
	}
	return l
}

// Insert adds word to the lexicon and reports whether it was not registered yet.
// Existing nodes along the path are reused, so words sharing a prefix keep their own branches.
func (l *Lexicon) Insert(word string) bool {
	if word == "" {
		return false
	}
	current := &l.root
	length := 0
	for _, r := range word {
		next := current.child(r)
		if next == nil {
			if current.children == nil {
				current.children = make(map[rune]*node)
			}
			next = &node{}
			current.children[r] = next
		}
		current = next
		length++
	}
	if current.terminal {
		return false
	}
	current.terminal = true
	l.count++
	if length > l.maxWordLen {
		l.maxWordLen = length
	}
	return true
}

func (l *Lexicon) find(seq string) *node {
	current := &l.root
	for _, r := range seq {
		current = current.child(r)
		if current == nil {
			return nil
		}
	}
	return current
}

// IsWord reports whether seq was inserted as a word.
func (l *Lexicon) IsWord(seq string) bool {
	if seq == "" {
		return false
	}
	n := l.find(seq)
	return n != nil && n.terminal
}

// IsPrefix reports whether seq is a prefix of at least one word. A word is a prefix of itself.
func (l *Lexicon) IsPrefix(seq string) bool {
	if seq == "" {
		return false
	}
	return l.find(seq) != nil
}

// LongestMatch walks the trie along text and returns the byte length of the longest
// word that text starts with, or 0 when no word matches.
// The walk stops as soon as the scanned runes leave the trie.
func (l *Lexicon) LongestMatch(text string) int {
	longest := 0
	current := &l.root
	for offset := 0; offset < len(text); {
		r, width := utf8.DecodeRuneInString(text[offset:])
		current = current.child(r)
		if current == nil {
			break
		}
		offset += width
		if current.terminal {
			longest = offset
		}
	}
	return longest
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	return l.count
}

// MaxWordLen returns the length of the longest word in code points.
func (l *Lexicon) MaxWordLen() int {
	return l.maxWordLen
}

// Words returns all words in code point order.
func (l *Lexicon) Words() []string {
	words := make([]string, 0, l.count)
	var walk func(n *node, prefix []rune)
	walk = func(n *node, prefix []rune) {
		if n.terminal {
			words = append(words, string(prefix))
		}
		keys := make([]rune, 0, len(n.children))
		for r := range n.children {
			keys = append(keys, r)
		}
		sort.Slice(keys, func(i, j int) bool {
			return keys[i] < keys[j]
		})
		for _, r := range keys {
			walk(n.children[r], append(prefix, r))
		}
	}
	walk(&l.root, make([]rune, 0, l.maxWordLen))
	return words
}
