package editor

import "strings"

// DownLines returns the offset n lines below pos, keeping the column when
// the target line is long enough. Running off the last line returns the
// document end.
func DownLines(text string, pos, n int) int {
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		pos = len(text)
	}
	col := pos - lineStart(text, pos)

	cur := lineStart(text, pos)
	for i := 0; i < n; i++ {
		nl := strings.IndexByte(text[cur:], '\n')
		if nl < 0 {
			return len(text)
		}
		cur = cur + nl + 1
	}
	end := lineEnd(text, cur)
	if cur+col < end {
		return cur + col
	}
	return end
}

// UpLines returns the offset n lines above pos, keeping the column when
// the target line is long enough. Running off the first line returns 0.
func UpLines(text string, pos, n int) int {
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		pos = len(text)
	}
	col := pos - lineStart(text, pos)

	cur := lineStart(text, pos)
	for i := 0; i < n; i++ {
		if cur == 0 {
			return 0
		}
		cur = lineStart(text, cur-1)
	}
	end := lineEnd(text, cur)
	if cur+col < end {
		return cur + col
	}
	return end
}

// lineStart returns the offset of the first character of the line
// containing pos.
func lineStart(text string, pos int) int {
	return strings.LastIndexByte(text[:pos], '\n') + 1
}

// lineEnd returns the offset just past the last character of the line
// starting at start, excluding the newline.
func lineEnd(text string, start int) int {
	nl := strings.IndexByte(text[start:], '\n')
	if nl < 0 {
		return len(text)
	}
	return start + nl
}
