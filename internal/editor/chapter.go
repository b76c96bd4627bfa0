package editor

import (
	"errors"

	"codeview/internal/pattern"
)

const (
	bodyOpenPattern  = `(?i)<\s*body[^>]*>`
	bodyClosePattern = `(?i)<\s*/\s*body\s*>`
	// Next tag that opens an element, skipping closing tags.
	nextOpenTagPattern = `<\s*(?!/)`
)

// SplitChapter cuts the document at the open tag nearest below the cursor
// and returns the removed upper half as a standalone XHTML chapter. The
// buffer keeps everything from the split point on; the removal is a single
// undoable step. With the cursor past the last open tag the whole body
// moves out and an empty paragraph is left behind.
func SplitChapter(buf *Buffer, patterns *pattern.Cache) (string, error) {
	text := buf.Text()

	open, err := patterns.GetMatcher(bodyOpenPattern)
	if err != nil {
		return "", err
	}
	bodyTag := open.FirstMatch(text)
	if !bodyTag.Found() {
		return "", errors.New("document has no body tag")
	}
	bodyTagStart := bodyTag.Start
	bodyTagEnd := bodyTag.End

	bodyContentsEnd := len(text)
	if closeRe, err := patterns.GetMatcher(bodyClosePattern); err == nil {
		if m := closeRe.FirstMatch(text); m.Found() {
			bodyContentsEnd = m.Start
		}
	}

	head := text[:bodyTagStart]

	nextOpen, err := patterns.GetMatcher(nextOpenTagPattern)
	if err != nil {
		return "", err
	}
	cursor := buf.CursorPosition()
	splitAt := bodyContentsEnd
	if m := nextOpen.FirstMatch(text[cursor:]); m.Found() {
		splitAt = cursor + m.Start
	}
	if splitAt < bodyTagEnd {
		splitAt = bodyTagEnd
	}

	segment := "<p>&nbsp;</p>"
	if splitAt != bodyTagEnd {
		segment = text[bodyTagStart:splitAt]
	}

	// Keep a blank line between the body tag and whatever tag now
	// directly follows it.
	replacement := ""
	if splitAt < len(text) && text[splitAt] == '<' {
		replacement = "\n"
	}
	buf.ReplaceRange(bodyTagEnd, splitAt, replacement)

	return head + segment + "</body></html>", nil
}
