package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codeview/internal/domain"
)

func TestFirstMatchReturnsByteOffsets(t *testing.T) {
	m, err := newMatcher(`cat`)
	require.NoError(t, err)

	match := m.FirstMatch("the cat sat")
	require.True(t, match.Found())
	require.Equal(t, 4, match.Start)
	require.Equal(t, 7, match.End)
}

func TestFirstMatchNoMatch(t *testing.T) {
	m, err := newMatcher(`cat`)
	require.NoError(t, err)

	match := m.FirstMatch("the dog sat")
	require.False(t, match.Found())
	require.Equal(t, -1, match.Start)
}

func TestInvalidPattern(t *testing.T) {
	_, err := newMatcher(`(`)
	require.Error(t, err)
}

func TestMultibyteOffsetsAreBytes(t *testing.T) {
	// "héllo " is 7 bytes: the é is two bytes.
	m, err := newMatcher(`wörld`)
	require.NoError(t, err)

	match := m.FirstMatch("héllo wörld")
	require.True(t, match.Found())
	require.Equal(t, 7, match.Start)
	require.Equal(t, 13, match.End)
}

func TestLastMatch(t *testing.T) {
	m, err := newMatcher(`foo`)
	require.NoError(t, err)

	match := m.LastMatch("foo bar foo")
	require.True(t, match.Found())
	require.Equal(t, 8, match.Start)
	require.Equal(t, 11, match.End)
}

func TestAllMatchesNonOverlapping(t *testing.T) {
	m, err := newMatcher(`cat`)
	require.NoError(t, err)

	matches := m.AllMatches("cat cat cat")
	require.Len(t, matches, 3)
	require.Equal(t, 0, matches[0].Start)
	require.Equal(t, 4, matches[1].Start)
	require.Equal(t, 8, matches[2].Start)
}

func TestAllMatchesEmpty(t *testing.T) {
	m, err := newMatcher(`xyz`)
	require.NoError(t, err)
	require.Empty(t, m.AllMatches("no such thing"))
}

func TestGroupOffsetsRelativeToMatch(t *testing.T) {
	m, err := newMatcher(`(\w+)@(\w+)`)
	require.NoError(t, err)

	match := m.FirstMatch("mail bob@host now")
	require.True(t, match.Found())
	require.Equal(t, 5, match.Start)
	require.Equal(t, 13, match.End)

	require.Len(t, match.Groups, 3)
	// Group 0 is the whole match.
	require.Equal(t, domain.GroupOffset{Start: 0, End: 8}, match.Groups[0])
	require.Equal(t, domain.GroupOffset{Start: 0, End: 3}, match.Groups[1])
	require.Equal(t, domain.GroupOffset{Start: 4, End: 8}, match.Groups[2])
}

func TestUnparticipatingGroup(t *testing.T) {
	m, err := newMatcher(`(a)|(b)`)
	require.NoError(t, err)

	match := m.FirstMatch("b")
	require.True(t, match.Found())
	require.Len(t, match.Groups, 3)
	require.Equal(t, -1, match.Groups[1].Start)
	require.Equal(t, domain.GroupOffset{Start: 0, End: 1}, match.Groups[2])
}

func TestMultilineMode(t *testing.T) {
	m, err := newMatcher(`^bar$`)
	require.NoError(t, err)

	match := m.FirstMatch("foo\nbar\nbaz")
	require.True(t, match.Found())
	require.Equal(t, 4, match.Start)
	require.Equal(t, 7, match.End)
}

func TestLookaheadSupported(t *testing.T) {
	m, err := newMatcher(`<\s*(?!/)`)
	require.NoError(t, err)

	match := m.FirstMatch("</p><div>")
	require.True(t, match.Found())
	require.Equal(t, 4, match.Start)
}
