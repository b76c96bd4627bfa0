package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddNewestFirst(t *testing.T) {
	s := NewStore(10)
	s.Add("cat")
	s.Add("dog")

	require.Equal(t, []string{"dog", "cat"}, s.All())
	require.Equal(t, "dog", s.At(0))
	require.Equal(t, "cat", s.At(1))
}

func TestAddDeduplicates(t *testing.T) {
	s := NewStore(10)
	s.Add("cat")
	s.Add("dog")
	s.Add("cat")

	require.Equal(t, []string{"cat", "dog"}, s.All())
	require.Equal(t, 2, s.Len())
}

func TestAddIgnoresEmpty(t *testing.T) {
	s := NewStore(10)
	s.Add("")
	require.Zero(t, s.Len())
}

func TestLimit(t *testing.T) {
	s := NewStore(2)
	s.Add("a")
	s.Add("b")
	s.Add("c")

	require.Equal(t, []string{"c", "b"}, s.All())
}

func TestAtOutOfRange(t *testing.T) {
	s := NewStore(10)
	s.Add("cat")
	require.Empty(t, s.At(5))
	require.Empty(t, s.At(-1))
}
