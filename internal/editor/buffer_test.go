package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceRange(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("the cat sat")

	b.ReplaceRange(4, 7, "dog")
	require.Equal(t, "the dog sat", b.Text())
	require.Equal(t, 7, b.CursorPosition(), "cursor lands after the inserted text")
}

func TestReplaceRangeGrowsAndShrinks(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("abc")

	b.ReplaceRange(1, 2, "xyz")
	require.Equal(t, "axyzc", b.Text())

	b.ReplaceRange(1, 4, "")
	require.Equal(t, "ac", b.Text())
}

func TestUndoRedo(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("one two three")

	b.ReplaceRange(4, 7, "2")
	require.Equal(t, "one 2 three", b.Text())

	require.True(t, b.Undo())
	require.Equal(t, "one two three", b.Text())

	require.True(t, b.Redo())
	require.Equal(t, "one 2 three", b.Text())

	require.False(t, b.Redo(), "nothing left to redo")
}

func TestUndoStackDepth(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("aaa")

	b.ReplaceRange(0, 1, "b")
	b.ReplaceRange(1, 2, "c")
	require.Equal(t, "bca", b.Text())

	require.True(t, b.Undo())
	require.True(t, b.Undo())
	require.Equal(t, "aaa", b.Text())
	require.False(t, b.Undo())
}

func TestReplaceDocumentTextIsOneUndoStep(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("cat cat cat")

	b.ReplaceDocumentText("dog dog dog")
	require.Equal(t, "dog dog dog", b.Text())

	require.True(t, b.Undo())
	require.Equal(t, "cat cat cat", b.Text())
	require.False(t, b.Undo())
}

func TestNewEditClearsRedo(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("abc")

	b.ReplaceRange(0, 1, "x")
	require.True(t, b.Undo())
	b.ReplaceRange(2, 3, "y")
	require.False(t, b.Redo())
}

func TestSelection(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("hello world")

	b.SetSelection(6, 11, false)
	start, end, text := b.Selection()
	require.Equal(t, 6, start)
	require.Equal(t, 11, end)
	require.Equal(t, "world", text)
	require.Equal(t, 11, b.CursorPosition())
}

func TestSelectionAnchorAtEnd(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("hello world")

	b.SetSelection(6, 11, true)
	require.Equal(t, 6, b.CursorPosition(), "active end is the start")
	require.True(t, b.AnchorAtEnd())
}

func TestSelectionClampedAndOrdered(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("short")

	b.SetSelection(100, -3, false)
	start, end, _ := b.Selection()
	require.Equal(t, 0, start)
	require.Equal(t, 5, end)
}

func TestSelectionClampsToRuneBoundary(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("héllo") // é spans bytes 1-2

	b.SetSelection(2, 5, false)
	start, _, _ := b.Selection()
	require.Equal(t, 1, start)
}

func TestClearSelection(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("hello world")

	b.SetSelection(6, 11, false)
	b.ClearSelection()
	start, end, text := b.Selection()
	require.Equal(t, 11, start)
	require.Equal(t, 11, end)
	require.Empty(t, text)
}

func TestTextChangedHooks(t *testing.T) {
	b := NewBuffer(nil)
	calls := 0
	b.OnTextChanged(func() { calls++ })

	b.SetText("abc")
	require.Equal(t, 1, calls)

	b.ReplaceRange(0, 1, "x")
	require.Equal(t, 2, calls)

	b.Undo()
	require.Equal(t, 3, calls)

	b.Redo()
	require.Equal(t, 4, calls)

	b.SetSelection(0, 1, false)
	require.Equal(t, 4, calls, "selection changes are not text changes")
}

func TestOpenSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chapter.xhtml")
	require.NoError(t, os.WriteFile(path, []byte("<p>hello</p>"), 0644))

	b := NewBuffer(nil)
	require.NoError(t, b.Open(path))
	require.Equal(t, "<p>hello</p>", b.Text())
	require.False(t, b.Dirty())
	require.Equal(t, "chapter.xhtml", b.Title())

	b.ReplaceRange(3, 8, "howdy")
	require.True(t, b.Dirty())

	require.NoError(t, b.Save())
	require.False(t, b.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<p>howdy</p>", string(data))
}

func TestSaveWithoutPath(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("text")
	require.Error(t, b.Save())
	require.Equal(t, "untitled", b.Title())
}
