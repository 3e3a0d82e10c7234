package nlp

import (
	"unicode"

	"github.com/future-architect/wordfencer/lexicon"
)

type Token struct {
	Word      string
	Lexical   bool
	Positions []uint32
}

type Tokenizer struct {
	lexicon *lexicon.Lexicon
}

func NewTokenizer(lex *lexicon.Lexicon) *Tokenizer {
	if lex == nil {
		lex = lexicon.New()
	}
	return &Tokenizer{
		lexicon: lex,
	}
}

// IsCJKPunctuation reports whether r is in the CJK Symbols and Punctuation block
// between U+3000 (ideographic space) and U+300F.
func IsCJKPunctuation(r rune) bool {
	return r >= '\u3000' && r <= '\u300f'
}

func isStopWord(word string) bool {
	for _, r := range word {
		if !unicode.IsSpace(r) && !unicode.IsPunct(r) && !IsCJKPunctuation(r) {
			return false
		}
	}
	return true
}

// Split segments content and drops tokens made only of spaces or punctuation.
func (t Tokenizer) Split(content string) []string {
	words := Segment(t.lexicon, content)
	result := make([]string, 0, len(words))
	for _, word := range words {
		if t.lexicon.IsWord(word) || !isStopWord(word) {
			result = append(result, word)
		}
	}
	return result
}

func (t Tokenizer) Tokenize(content string) map[string]*Token {
	words := t.Split(content)
	tokens := make(map[string]*Token)
	var position uint32
	for _, word := range words {
		if token, ok := tokens[word]; ok {
			token.Positions = append(token.Positions, position)
		} else {
			tokens[word] = &Token{
				Word:      word,
				Lexical:   t.lexicon.IsWord(word),
				Positions: []uint32{position},
			}
		}
		position++
	}
	return tokens
}
