package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"codeview/internal/eventbus"
)

// editOp records a single edit for undo/redo support.
type editOp struct {
	offset  int
	oldText string
	newText string
}

// Buffer holds the document text plus the selection state the search and
// replace operations work against. Every mutation runs through ReplaceRange
// or ReplaceDocumentText so it lands on the undo stack as one step, and
// every mutation synchronously invokes the registered text-changed hooks
// before returning; stale-match invalidation depends on that ordering.
type Buffer struct {
	path      string // absolute path, or "" if untitled
	text      string
	savedText string // text at last save/open (for dirty comparison)

	selStart    int
	selEnd      int
	anchorAtEnd bool

	undoStack []editOp
	redoStack []editOp

	hooks []func()
	bus   eventbus.EventBus
}

// NewBuffer creates a new empty, untitled buffer.
func NewBuffer(bus eventbus.EventBus) *Buffer {
	return &Buffer{bus: bus}
}

// OnTextChanged registers a hook invoked synchronously after every
// mutation of the buffer text, whatever caused it.
func (b *Buffer) OnTextChanged(fn func()) {
	b.hooks = append(b.hooks, fn)
}

// Open reads the file at path into the buffer, replacing any existing
// content and clearing the undo history.
func (b *Buffer) Open(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", absPath, err)
	}

	b.path = absPath
	b.SetText(string(data))
	b.savedText = b.text

	if b.bus != nil {
		b.bus.Publish(eventbus.FileLoadedEvent{Path: absPath, Size: len(data)})
	}
	return nil
}

// Save writes the current text to the stored path.
func (b *Buffer) Save() error {
	if b.path == "" {
		return errors.New("buffer has no path; use SaveAs")
	}
	if err := os.WriteFile(b.path, []byte(b.text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", b.path, err)
	}
	b.savedText = b.text

	if b.bus != nil {
		b.bus.Publish(eventbus.FileSavedEvent{Path: b.path})
	}
	return nil
}

// SaveAs writes the current text to the given path and adopts it.
func (b *Buffer) SaveAs(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(absPath, []byte(b.text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", absPath, err)
	}
	b.path = absPath
	b.savedText = b.text

	if b.bus != nil {
		b.bus.Publish(eventbus.FileSavedEvent{Path: absPath})
	}
	return nil
}

// Path returns the absolute file path, or "" if the buffer is untitled.
func (b *Buffer) Path() string {
	return b.path
}

// Title returns the base filename, or "untitled" if the buffer has no path.
func (b *Buffer) Title() string {
	if b.path == "" {
		return "untitled"
	}
	return filepath.Base(b.path)
}

// Dirty reports whether the text differs from the last saved/opened text.
func (b *Buffer) Dirty() bool {
	return b.text != b.savedText
}

// Text returns the current document text.
func (b *Buffer) Text() string {
	return b.text
}

// SetText replaces the entire document content outside the undo history
// (used when loading), resets the selection and fires the change hooks.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.undoStack = nil
	b.redoStack = nil
	b.selStart = 0
	b.selEnd = 0
	b.anchorAtEnd = false
	b.notifyChanged()
}

// Selection returns the selection bounds and the selected text. When
// nothing is selected both bounds equal the cursor position and the text
// is empty.
func (b *Buffer) Selection() (start, end int, text string) {
	return b.selStart, b.selEnd, b.text[b.selStart:b.selEnd]
}

// SetSelection selects [start, end). anchorAtEnd true puts the anchor at
// the end and the active position at the start, which is how a backward
// search keeps walking upward from each match. Bounds are clamped to the
// document and to rune boundaries; an inverted span is reordered.
func (b *Buffer) SetSelection(start, end int, anchorAtEnd bool) {
	if start > end {
		start, end = end, start
	}
	b.selStart = b.clamp(start)
	b.selEnd = b.clamp(end)
	b.anchorAtEnd = anchorAtEnd
}

// ClearSelection collapses the selection to its active end.
func (b *Buffer) ClearSelection() {
	pos := b.CursorPosition()
	b.selStart = pos
	b.selEnd = pos
	b.anchorAtEnd = false
}

// CursorPosition returns the active end of the selection.
func (b *Buffer) CursorPosition() int {
	if b.anchorAtEnd {
		return b.selStart
	}
	return b.selEnd
}

// SetCursor collapses the selection to pos.
func (b *Buffer) SetCursor(pos int) {
	pos = b.clamp(pos)
	b.selStart = pos
	b.selEnd = pos
	b.anchorAtEnd = false
}

// AnchorAtEnd reports the selection orientation.
func (b *Buffer) AnchorAtEnd() bool {
	return b.anchorAtEnd
}

// ReplaceRange replaces [start, end) with newText as a single undoable
// step. The selection collapses to the end of the inserted text.
func (b *Buffer) ReplaceRange(start, end int, newText string) {
	start = b.clamp(start)
	end = b.clamp(end)
	if start > end {
		start, end = end, start
	}
	b.applyEdit(editOp{offset: start, oldText: b.text[start:end], newText: newText})
	b.SetCursor(start + len(newText))
}

// ReplaceDocumentText replaces the entire document as a single undoable
// step. The caller is responsible for restoring the cursor afterwards.
func (b *Buffer) ReplaceDocumentText(newText string) {
	b.applyEdit(editOp{offset: 0, oldText: b.text, newText: newText})
}

// applyEdit records the edit on the undo stack, clears the redo stack,
// applies it and fires the change hooks.
func (b *Buffer) applyEdit(op editOp) {
	b.undoStack = append(b.undoStack, op)
	b.redoStack = nil
	b.text = b.text[:op.offset] + op.newText + b.text[op.offset+len(op.oldText):]
	b.reclampSelection()
	b.notifyChanged()
}

// Undo reverses the last edit. Returns false if there is nothing to undo.
func (b *Buffer) Undo() bool {
	if len(b.undoStack) == 0 {
		return false
	}
	op := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.text = b.text[:op.offset] + op.oldText + b.text[op.offset+len(op.newText):]
	b.redoStack = append(b.redoStack, op)
	b.reclampSelection()
	b.notifyChanged()
	return true
}

// Redo reapplies the last undone edit. Returns false if there is nothing
// to redo.
func (b *Buffer) Redo() bool {
	if len(b.redoStack) == 0 {
		return false
	}
	op := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.text = b.text[:op.offset] + op.newText + b.text[op.offset+len(op.oldText):]
	b.undoStack = append(b.undoStack, op)
	b.reclampSelection()
	b.notifyChanged()
	return true
}

func (b *Buffer) notifyChanged() {
	for _, fn := range b.hooks {
		fn()
	}
	if b.bus != nil {
		b.bus.Publish(eventbus.TextChangedEvent{Path: b.path})
	}
}

// clamp bounds pos to the document and backs it up to a rune boundary.
func (b *Buffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos >= len(b.text) {
		return len(b.text)
	}
	for pos > 0 && !utf8.RuneStart(b.text[pos]) {
		pos--
	}
	return pos
}

func (b *Buffer) reclampSelection() {
	b.selStart = b.clamp(b.selStart)
	b.selEnd = b.clamp(b.selEnd)
	if b.selStart > b.selEnd {
		b.selStart, b.selEnd = b.selEnd, b.selStart
	}
}
