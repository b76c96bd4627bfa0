package spell

import (
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"codeview/internal/domain"
	"codeview/internal/pattern"
)

// Scanner runs directional misspelled-word scans over document text. The
// word pattern is compiled through the shared pattern cache; an empty
// pattern falls back to Unicode word segmentation.
type Scanner struct {
	checker  *Checker
	patterns *pattern.Cache
}

// NewScanner creates a scanner backed by the given checker and cache.
func NewScanner(checker *Checker, patterns *pattern.Cache) *Scanner {
	return &Scanner{checker: checker, patterns: patterns}
}

// Checker returns the underlying spell checker.
func (s *Scanner) Checker() *Checker {
	return s.checker
}

// FirstMisspelled returns the earliest misspelled word inside
// text[start:end), with offsets relative to start. A no-match sentinel
// means every word in range is spelled correctly.
func (s *Scanner) FirstMisspelled(text string, start, end int, wordPattern string) (domain.MatchRecord, error) {
	tokens, err := s.tokenize(text, start, end, wordPattern)
	if err != nil {
		return domain.NoMatch(), err
	}
	for _, tok := range tokens {
		if !s.checker.CheckWord(tok.word) {
			return domain.MatchRecord{Start: tok.start, End: tok.end}, nil
		}
	}
	return domain.NoMatch(), nil
}

// LastMisspelled returns the latest misspelled word inside
// text[start:end), with offsets relative to start.
func (s *Scanner) LastMisspelled(text string, start, end int, wordPattern string) (domain.MatchRecord, error) {
	tokens, err := s.tokenize(text, start, end, wordPattern)
	if err != nil {
		return domain.NoMatch(), err
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		if !s.checker.CheckWord(tok.word) {
			return domain.MatchRecord{Start: tok.start, End: tok.end}, nil
		}
	}
	return domain.NoMatch(), nil
}

// CountMisspelled counts the misspelled words inside text[start:end).
func (s *Scanner) CountMisspelled(text string, start, end int, wordPattern string) (int, error) {
	tokens, err := s.tokenize(text, start, end, wordPattern)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, tok := range tokens {
		if !s.checker.CheckWord(tok.word) {
			count++
		}
	}
	return count, nil
}

// token is one word candidate; offsets are relative to the scanned range.
type token struct {
	word  string
	start int
	end   int
}

func (s *Scanner) tokenize(text string, start, end int, wordPattern string) ([]token, error) {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return nil, nil
	}
	segment := text[start:end]

	if wordPattern == "" {
		return segmentWords(segment), nil
	}

	matcher, err := s.patterns.GetMatcher(wordPattern)
	if err != nil {
		return nil, err
	}
	var tokens []token
	for _, m := range matcher.AllMatches(segment) {
		tokens = append(tokens, token{
			word:  segment[m.Start:m.End],
			start: m.Start,
			end:   m.End,
		})
	}
	return tokens, nil
}

// segmentWords splits segment into word tokens using Unicode text
// segmentation. UAX #29 segments tile the input, so byte positions come
// from a running offset.
func segmentWords(segment string) []token {
	var tokens []token
	pos := 0
	iter := words.FromString(segment)
	for iter.Next() {
		value := iter.Value()
		if isWordToken(value) {
			tokens = append(tokens, token{
				word:  value,
				start: pos,
				end:   pos + len(value),
			})
		}
		pos += len(value)
	}
	return tokens
}

// isWordToken reports whether a segment contains at least one letter,
// filtering out whitespace and punctuation segments.
func isWordToken(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
