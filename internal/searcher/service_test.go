package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codeview/internal/domain"
	"codeview/internal/editor"
	"codeview/internal/eventbus"
	"codeview/internal/pattern"
	"codeview/internal/spell"
)

// recordingBus captures published events synchronously so tests can
// assert on notification order without the async dispatch of the real bus.
type recordingBus struct {
	events []domain.DomainEvent
}

func (b *recordingBus) Publish(e domain.DomainEvent) {
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) countType(t eventbus.EventType) int {
	n := 0
	for _, e := range b.events {
		if e.Type() == t {
			n++
		}
	}
	return n
}

func newTestService(t *testing.T, text string) (*Service, *editor.Buffer, *recordingBus) {
	t.Helper()
	bus := &recordingBus{}
	buf := editor.NewBuffer(nil)
	buf.SetText(text)
	checker := spell.NewCheckerFromWords([]string{"the", "quick", "brown", "fox", "dog", "cat"}, nil)
	patterns := pattern.NewCache(64)
	scanner := spell.NewScanner(checker, patterns)
	return NewService(buf, patterns, scanner, bus), buf, bus
}

func TestFindNextForward(t *testing.T) {
	s, buf, _ := newTestService(t, "cat cat cat")

	found, err := s.FindNext("cat", domain.DirectionDown, false, false, false)
	require.NoError(t, err)
	require.True(t, found)

	start, end, text := buf.Selection()
	require.Equal(t, 0, start)
	require.Equal(t, 3, end)
	require.Equal(t, "cat", text)
	require.Equal(t, 0, s.LastMatch().Start)
	require.Equal(t, 3, s.LastMatch().End)
}

func TestFindNextAdvancesThroughMatches(t *testing.T) {
	s, buf, _ := newTestService(t, "cat cat cat")

	starts := []int{0, 4, 8}
	for _, want := range starts {
		found, err := s.FindNext("cat", domain.DirectionDown, false, false, false)
		require.NoError(t, err)
		require.True(t, found)
		start, _, _ := buf.Selection()
		require.Equal(t, want, start)
	}

	found, err := s.FindNext("cat", domain.DirectionDown, false, false, false)
	require.NoError(t, err)
	require.False(t, found, "no wrap, so the search stops at the end")
	require.False(t, s.LastMatch().Found())
}

func TestFindNextWrap(t *testing.T) {
	s, buf, bus := newTestService(t, "cat cat cat")

	for i := 0; i < 3; i++ {
		found, err := s.FindNext("cat", domain.DirectionDown, false, false, true)
		require.NoError(t, err)
		require.True(t, found)
	}

	// Fourth search wraps back to the first match and says so, once.
	found, err := s.FindNext("cat", domain.DirectionDown, false, false, true)
	require.NoError(t, err)
	require.True(t, found)
	start, _, _ := buf.Selection()
	require.Equal(t, 0, start)
	require.Equal(t, 1, bus.countType(eventbus.EventSearchWrapped))
}

func TestFindNextWrapNoMatchAnywhere(t *testing.T) {
	s, _, bus := newTestService(t, "cat cat cat")

	found, err := s.FindNext("bird", domain.DirectionDown, false, false, true)
	require.NoError(t, err)
	require.False(t, found)
	require.Zero(t, bus.countType(eventbus.EventSearchWrapped))
}

func TestFindNextBackward(t *testing.T) {
	s, buf, _ := newTestService(t, "foo bar foo")

	found, err := s.FindNext("foo", domain.DirectionUp, false, true, false)
	require.NoError(t, err)
	require.True(t, found)
	start, end, _ := buf.Selection()
	require.Equal(t, 8, start)
	require.Equal(t, 11, end)
	require.True(t, buf.AnchorAtEnd(), "backward match anchors at the end")

	found, err = s.FindNext("foo", domain.DirectionUp, false, false, false)
	require.NoError(t, err)
	require.True(t, found)
	start, end, _ = buf.Selection()
	require.Equal(t, 0, start)
	require.Equal(t, 3, end)

	found, err = s.FindNext("foo", domain.DirectionUp, false, false, false)
	require.NoError(t, err)
	require.False(t, found)
}

func TestFindNextSpellingBackwardNarrowsAnchor(t *testing.T) {
	// A backward spelling scan excludes the character at the anchor, so
	// a misspelled word ending on the final character is not reachable.
	s, _, _ := newTestService(t, "the qq")

	found, err := s.FindNext("", domain.DirectionDown, true, false, false)
	require.NoError(t, err)
	require.True(t, found, "forward scan sees the trailing word")

	found, err = s.FindNext("", domain.DirectionUp, true, true, false)
	require.NoError(t, err)
	require.False(t, found, "backward scan stops one character short of it")
}

func TestFindNextSpellingBackwardMultibyteAnchor(t *testing.T) {
	// Narrowing the anchor steps back a whole character. Stepping a
	// single byte would split the trailing rune and leave the final
	// token ending mid-sequence.
	s, buf, _ := newTestService(t, "qzick café")

	found, err := s.FindNext(`\S+`, domain.DirectionUp, true, true, false)
	require.NoError(t, err)
	require.True(t, found)

	start, end, text := buf.Selection()
	require.Equal(t, 6, start)
	require.Equal(t, 9, end)
	require.Equal(t, "caf", text)
}

func TestFindNextMultiline(t *testing.T) {
	s, buf, _ := newTestService(t, "foo\nbar\nfoo")

	found, err := s.FindNext("^foo$", domain.DirectionDown, false, false, false)
	require.NoError(t, err)
	require.True(t, found)
	start, _, _ := buf.Selection()
	require.Equal(t, 0, start)

	found, err = s.FindNext("^foo$", domain.DirectionDown, false, false, false)
	require.NoError(t, err)
	require.True(t, found)
	start, end, _ := buf.Selection()
	require.Equal(t, 8, start)
	require.Equal(t, 11, end)
}

func TestFindNextInvalidPattern(t *testing.T) {
	s, _, _ := newTestService(t, "whatever")

	found, err := s.FindNext("(", domain.DirectionDown, false, false, false)
	require.Error(t, err)
	require.False(t, found)
	require.False(t, s.LastMatch().Found())
}

func TestFindNextPublishesMatchFound(t *testing.T) {
	s, _, bus := newTestService(t, "cat")

	_, err := s.FindNext("cat", domain.DirectionDown, false, false, false)
	require.NoError(t, err)
	require.Equal(t, 1, bus.countType(eventbus.EventMatchFound))
}

func TestFindNextSpelling(t *testing.T) {
	s, buf, _ := newTestService(t, "the qzick brown fox")

	found, err := s.FindNext("", domain.DirectionDown, true, false, false)
	require.NoError(t, err)
	require.True(t, found)
	_, _, word := buf.Selection()
	require.Equal(t, "qzick", word)
}

func TestFindNextSpellingBackward(t *testing.T) {
	s, buf, _ := newTestService(t, "qzick brown vrown the.")

	found, err := s.FindNext("", domain.DirectionUp, true, true, false)
	require.NoError(t, err)
	require.True(t, found)
	_, _, word := buf.Selection()
	require.Equal(t, "vrown", word)

	found, err = s.FindNext("", domain.DirectionUp, true, false, false)
	require.NoError(t, err)
	require.True(t, found)
	_, _, word = buf.Selection()
	require.Equal(t, "qzick", word)
}

func TestCount(t *testing.T) {
	s, _, _ := newTestService(t, "cat cat cat")

	n, err := s.Count("cat", false)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = s.Count("bird", false)
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = s.Count("(", false)
	require.Error(t, err)
}

func TestCountSpelling(t *testing.T) {
	s, _, _ := newTestService(t, "the qzick brown vrown")

	n, err := s.Count("", true)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestCountDoesNotTouchSelection(t *testing.T) {
	s, buf, _ := newTestService(t, "cat cat cat")
	buf.SetSelection(4, 7, false)

	_, err := s.Count("cat", false)
	require.NoError(t, err)
	start, end, _ := buf.Selection()
	require.Equal(t, 4, start)
	require.Equal(t, 7, end)
}
