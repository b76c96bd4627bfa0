package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceBackReferences(t *testing.T) {
	m, err := newMatcher(`(\w+)=(\w+)`)
	require.NoError(t, err)

	match := m.FirstMatch("key=value")
	require.True(t, match.Found())

	out, ok := m.Replace("key=value", match.Groups, `\2=\1`)
	require.True(t, ok)
	require.Equal(t, "value=key", out)
}

func TestReplaceWholeMatchReference(t *testing.T) {
	m, err := newMatcher(`cat`)
	require.NoError(t, err)

	match := m.FirstMatch("cat")
	out, ok := m.Replace("cat", match.Groups, `[\0]`)
	require.True(t, ok)
	require.Equal(t, "[cat]", out)
}

func TestReplaceLiteralText(t *testing.T) {
	m, err := newMatcher(`cat`)
	require.NoError(t, err)

	match := m.FirstMatch("cat")
	out, ok := m.Replace("cat", match.Groups, "dog")
	require.True(t, ok)
	require.Equal(t, "dog", out)
}

func TestReplaceEscapedBackslash(t *testing.T) {
	m, err := newMatcher(`(a)`)
	require.NoError(t, err)

	match := m.FirstMatch("a")
	out, ok := m.Replace("a", match.Groups, `\\1`)
	require.True(t, ok)
	require.Equal(t, `\1`, out)
}

func TestReplaceUnknownEscapeKeptVerbatim(t *testing.T) {
	m, err := newMatcher(`a`)
	require.NoError(t, err)

	match := m.FirstMatch("a")
	out, ok := m.Replace("a", match.Groups, `\n`)
	require.True(t, ok)
	require.Equal(t, `\n`, out)
}

func TestReplaceTrailingBackslash(t *testing.T) {
	m, err := newMatcher(`a`)
	require.NoError(t, err)

	match := m.FirstMatch("a")
	out, ok := m.Replace("a", match.Groups, `x\`)
	require.True(t, ok)
	require.Equal(t, `x\`, out)
}

func TestReplaceOutOfRangeGroupFails(t *testing.T) {
	m, err := newMatcher(`(a)`)
	require.NoError(t, err)

	match := m.FirstMatch("a")
	_, ok := m.Replace("a", match.Groups, `\5`)
	require.False(t, ok)
}

func TestReplaceUnparticipatingGroupFails(t *testing.T) {
	m, err := newMatcher(`(a)|(b)`)
	require.NoError(t, err)

	match := m.FirstMatch("b")
	_, ok := m.Replace("b", match.Groups, `\1`)
	require.False(t, ok)
}

func TestReplaceTwoDigitReferenceOnlyWhenGroupExists(t *testing.T) {
	m, err := newMatcher(`(a)(b)`)
	require.NoError(t, err)

	match := m.FirstMatch("ab")
	// Only groups 0..2 exist, so \12 reads as group 1 followed by "2".
	out, ok := m.Replace("ab", match.Groups, `\12`)
	require.True(t, ok)
	require.Equal(t, "a2", out)
}

func TestCacheReturnsIdenticalMatcher(t *testing.T) {
	c := NewCache(8)

	m1, err := c.GetMatcher(`cat`)
	require.NoError(t, err)
	m2, err := c.GetMatcher(`cat`)
	require.NoError(t, err)
	require.Same(t, m1, m2)
	require.Equal(t, 1, c.Len())
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	c := NewCache(8)

	_, err := c.GetMatcher(`(`)
	require.Error(t, err)
	require.Equal(t, 0, c.Len())

	_, err = c.GetMatcher(`(`)
	require.Error(t, err)
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(2)

	_, err := c.GetMatcher(`a`)
	require.NoError(t, err)
	_, err = c.GetMatcher(`b`)
	require.NoError(t, err)
	_, err = c.GetMatcher(`c`)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
}
