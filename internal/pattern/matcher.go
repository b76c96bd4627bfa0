package pattern

import (
	"fmt"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"codeview/internal/domain"
)

// Matcher is a compiled search pattern. All offsets it reports are byte
// offsets into the searched text; the underlying engine works in runes and
// the conversion happens here so nothing else has to care.
type Matcher struct {
	pattern string
	re      *regexp2.Regexp
}

func newMatcher(pat string) (*Matcher, error) {
	re, err := regexp2.Compile(pat, regexp2.Multiline)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pat, err)
	}
	return &Matcher{pattern: pat, re: re}, nil
}

// Pattern returns the pattern string this matcher was compiled from.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// FirstMatch returns the earliest match in text, or the no-match sentinel.
func (m *Matcher) FirstMatch(text string) domain.MatchRecord {
	runes := []rune(text)
	match, err := m.re.FindRunesMatch(runes)
	if err != nil || match == nil {
		return domain.NoMatch()
	}
	return recordFromMatch(match, newOffsetMap(runes))
}

// LastMatch returns the latest match in text, or the no-match sentinel.
func (m *Matcher) LastMatch(text string) domain.MatchRecord {
	runes := []rune(text)
	match, err := m.re.FindRunesMatch(runes)
	if err != nil || match == nil {
		return domain.NoMatch()
	}
	last := match
	for {
		next, err := m.re.FindNextMatch(last)
		if err != nil || next == nil {
			break
		}
		last = next
	}
	return recordFromMatch(last, newOffsetMap(runes))
}

// AllMatches returns every non-overlapping match in text, ordered by
// ascending start offset. Returns nil when there are none.
func (m *Matcher) AllMatches(text string) []domain.MatchRecord {
	runes := []rune(text)
	match, err := m.re.FindRunesMatch(runes)
	if err != nil || match == nil {
		return nil
	}
	om := newOffsetMap(runes)
	var records []domain.MatchRecord
	for match != nil {
		records = append(records, recordFromMatch(match, om))
		match, err = m.re.FindNextMatch(match)
		if err != nil {
			break
		}
	}
	return records
}

// offsetMap translates the engine's rune indices into byte offsets.
type offsetMap struct {
	byteOf []int
}

func newOffsetMap(runes []rune) *offsetMap {
	byteOf := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		byteOf[i] = b
		b += utf8.RuneLen(r)
	}
	byteOf[len(runes)] = b
	return &offsetMap{byteOf: byteOf}
}

// recordFromMatch converts an engine match into a MatchRecord. Capture
// group offsets are stored relative to the match's own start so they stay
// valid when the record is rebased into document coordinates; group 0 is
// the whole match.
func recordFromMatch(match *regexp2.Match, om *offsetMap) domain.MatchRecord {
	start := om.byteOf[match.Index]
	end := om.byteOf[match.Index+match.Length]

	groups := match.Groups()
	rec := domain.MatchRecord{
		Start:  start,
		End:    end,
		Groups: make([]domain.GroupOffset, 0, len(groups)),
	}
	for i := range groups {
		g := &groups[i]
		if len(g.Captures) == 0 {
			rec.Groups = append(rec.Groups, domain.GroupOffset{Start: -1, End: -1})
			continue
		}
		rec.Groups = append(rec.Groups, domain.GroupOffset{
			Start: om.byteOf[g.Index] - start,
			End:   om.byteOf[g.Index+g.Length] - start,
		})
	}
	return rec
}
