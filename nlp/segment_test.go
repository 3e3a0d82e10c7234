package nlp

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/future-architect/wordfencer/lexicon"
	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	type args struct {
		words []string
		text  string
	}
	tests := []struct {
		name string
		args args
		want []string
	}{
		{
			name: "empty text",
			args: args{
				words: []string{"政府"},
				text:  "",
			},
			want: []string{},
		},
		{
			name: "longest match then unknown characters",
			args: args{
				words: []string{"ABC"},
				text:  "ABCDE",
			},
			want: []string{"ABC", "D", "E"},
		},
		{
			name: "two similar words",
			args: args{
				words: []string{"非政府", "政府"},
				text:  "非政府政府",
			},
			want: []string{"非政府", "政府"},
		},
		{
			name: "matches and non matches mixed",
			args: args{
				words: []string{"非政府", "政府"},
				text:  "受非政府盈政府",
			},
			want: []string{"受", "非政府", "盈", "政府"},
		},
		{
			name: "two word sequence",
			args: args{
				words: []string{"政府", "感同身受"},
				text:  "政府感同身受",
			},
			want: []string{"政府", "感同身受"},
		},
		{
			name: "single token",
			args: args{
				words: []string{"感"},
				text:  "感",
			},
			want: []string{"感"},
		},
		{
			name: "first string match",
			args: args{
				words: []string{"感"},
				text:  "感?",
			},
			want: []string{"感", "?"},
		},
		{
			name: "short word is not preferred over longer word",
			args: args{
				words: []string{"时", "时间", "是"},
				text:  "时间是",
			},
			want: []string{"时间", "是"},
		},
		{
			name: "prefix without word falls back to shorter word",
			args: args{
				words: []string{"感", "感同身受"},
				text:  "感同",
			},
			want: []string{"感", "同"},
		},
		{
			name: "prefix without any word falls back to single character",
			args: args{
				words: []string{"感同身受"},
				text:  "感同身",
			},
			want: []string{"感", "同", "身"},
		},
		{
			name: "thai",
			args: args{
				words: []string{"ทิ้งลูกทิ้งเมีย", "ผู้ที่สูงอายุ"},
				text:  "ผู้ที่สูงอายุทิ้งลูกทิ้งเมีย",
			},
			want: []string{"ผู้ที่สูงอายุ", "ทิ้งลูกทิ้งเมีย"},
		},
		{
			name: "no dictionary",
			args: args{
				words: nil,
				text:  "鳳凰",
			},
			want: []string{"鳳", "凰"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Segment(lexicon.Build(tt.args.words), tt.args.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegment_NilLexicon(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Segment(nil, "ab"))
	assert.Empty(t, AllMatches(nil, "ab"))
}

func TestSegment_Partition(t *testing.T) {
	lex := lexicon.Build([]string{"鳳凰古城", "鮮明", "鬧翻", "非政府", "感同身受", "政府", "政", "a", "ab"})
	texts := []string{
		"鳳凰古城鮮明鬧翻非政府感同身受",
		"政府?感同身受!!非政治",
		"abcab 鬧翻了",
		"invalid \xff\xfe utf-8 政府",
		"",
	}
	for _, text := range texts {
		tokens := Segment(lex, text)
		assert.Equal(t, text, strings.Join(tokens, ""))
		runes := 0
		for _, token := range tokens {
			assert.NotEmpty(t, token)
			runes += utf8.RuneCountInString(token)
		}
		assert.Equal(t, utf8.RuneCountInString(text), runes)
	}
}

func TestSegment_MultipleTokens(t *testing.T) {
	tokens := []string{"三八线", "不避艰险", "中国光大银行", "不計其數", "二鬼子", "人頭"}
	lex := lexicon.Build(tokens)
	result := Segment(lex, strings.Join(tokens, ""))
	assert.Equal(t, tokens, result)
}

func TestSegment_Deterministic(t *testing.T) {
	words := []string{"非政府", "政府", "政", "府"}
	reversed := []string{"府", "政", "政府", "非政府"}
	text := "受非政府盈政府政"
	assert.Equal(t, Segment(lexicon.Build(words), text), Segment(lexicon.Build(reversed), text))
}

func TestAllMatches(t *testing.T) {
	type args struct {
		words []string
		text  string
	}
	tests := []struct {
		name string
		args args
		want []string
	}{
		{
			name: "two word sequence",
			args: args{
				words: []string{"政府", "感同身受"},
				text:  "政府感同身受",
			},
			want: []string{"政府", "感同身受"},
		},
		{
			name: "overlapping matches",
			args: args{
				words: []string{"非政府", "政府"},
				text:  "非政府",
			},
			want: []string{"非政府", "政府"},
		},
		{
			name: "duplicates collapsed",
			args: args{
				words: []string{"政府"},
				text:  "政府政府",
			},
			want: []string{"政府"},
		},
		{
			name: "single character words are kept",
			args: args{
				words: []string{"时间", "间", "是"},
				text:  "时间是",
			},
			want: []string{"时间", "间", "是"},
		},
		{
			name: "empty",
			args: args{
				words: []string{"政府"},
				text:  "",
			},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllMatches(lexicon.Build(tt.args.words), tt.args.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AllMatches() = %v, want %v", got, tt.want)
			}
		})
	}
}
