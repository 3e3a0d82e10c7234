package nlp

import (
	"unicode/utf8"

	"github.com/future-architect/wordfencer/lexicon"
)

// Segment splits text into the longest dictionary words found from left to right.
// Characters that do not start any word are returned as single character tokens,
// so joining the result always gives back text. A nil lexicon is treated as empty.
func Segment(lex *lexicon.Lexicon, text string) []string {
	tokens := []string{}
	for len(text) > 0 {
		length, _ := nextToken(lex, text)
		tokens = append(tokens, text[:length])
		text = text[length:]
	}
	return tokens
}

// AllMatches returns every dictionary word that Segment would emit first when started
// at any character of text. Overlapping words are kept; duplicates are removed and the
// order of first appearance is preserved.
func AllMatches(lex *lexicon.Lexicon, text string) []string {
	seen := make(map[string]bool)
	result := []string{}
	for offset := 0; offset < len(text); {
		length, lexical := nextToken(lex, text[offset:])
		if lexical {
			word := text[offset : offset+length]
			if !seen[word] {
				seen[word] = true
				result = append(result, word)
			}
		}
		_, width := utf8.DecodeRuneInString(text[offset:])
		offset += width
	}
	return result
}

// nextToken returns the byte length of the first token of text, which must not be empty,
// and whether the token is a dictionary word.
func nextToken(lex *lexicon.Lexicon, text string) (int, bool) {
	if lex != nil {
		if length := lex.LongestMatch(text); length > 0 {
			return length, true
		}
	}
	_, width := utf8.DecodeRuneInString(text)
	return width, false
}
