package ui

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderDocument())
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderPrompt())

	return b.String()
}

func (m *Model) renderTitle() string {
	title := m.buf.Title()
	if m.buf.Dirty() {
		title += " [+]"
	}
	flags := fmt.Sprintf("  wrap:%v spell:%v", m.wrap, m.checkSpelling)
	return m.styles.Title.Render(title) + m.styles.Dim.Render(flags)
}

// renderDocument paints the visible slice of the buffer with the
// selection highlighted. Offsets are tracked per line so multi-line
// selections highlight correctly.
func (m *Model) renderDocument() string {
	text := m.buf.Text()
	selStart, selEnd, _ := m.buf.Selection()
	lines := strings.SplitAfter(text, "\n")

	var b strings.Builder
	offset := 0
	shown := 0
	for i, line := range lines {
		lineLen := len(line)
		if i < m.top {
			offset += lineLen
			continue
		}
		if shown >= m.docHeight() {
			break
		}
		display := strings.TrimSuffix(line, "\n")

		if m.showNum {
			b.WriteString(m.styles.LineNumber.Render(fmt.Sprintf("%4d ", i+1)))
		}
		b.WriteString(m.highlightLine(display, offset, selStart, selEnd))
		b.WriteString("\n")

		offset += lineLen
		shown++
	}
	for ; shown < m.docHeight(); shown++ {
		b.WriteString(m.styles.Dim.Render("~"))
		b.WriteString("\n")
	}
	return b.String()
}

// highlightLine applies the selection background to the part of the line
// that falls inside [selStart, selEnd).
func (m *Model) highlightLine(line string, lineOffset, selStart, selEnd int) string {
	if selStart == selEnd || selEnd <= lineOffset || selStart >= lineOffset+len(line) {
		return line
	}
	lo := selStart - lineOffset
	if lo < 0 {
		lo = 0
	}
	hi := selEnd - lineOffset
	if hi > len(line) {
		hi = len(line)
	}
	return line[:lo] + m.styles.SelectionBg.Render(line[lo:hi]) + line[hi:]
}

func (m *Model) renderStatus() string {
	style := m.styles.Status
	switch m.statusLevel {
	case statusError:
		style = m.styles.StatusError
	case statusSuccess:
		style = m.styles.StatusSuccess
	case statusWarning:
		style = m.styles.StatusWarning
	}
	return style.Render(m.status)
}

func (m *Model) renderPrompt() string {
	switch m.mode {
	case modeNormal:
		return m.styles.Help.Render("/ find  ? find up  n/N next/prev  r replace  R replace all  c count  m misspelled  z suggest  s spell  w wrap  u undo  h help  q quit")
	case modeSuggest:
		return m.renderSuggestions()
	default:
		return m.styles.Prompt.Render(m.promptLabel) + m.textInput.View()
	}
}

func (m *Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return m.styles.Misspelled.Render(m.suggestWord) +
			m.styles.Dim.Render("  no suggestions  ") +
			m.styles.Help.Render("a add  i ignore  esc cancel")
	}
	var parts []string
	for i, s := range m.suggestions {
		parts = append(parts, m.styles.SuggestIndex.Render(fmt.Sprintf("%d", i+1))+":"+s)
	}
	return m.styles.Misspelled.Render(m.suggestWord) + "  " +
		strings.Join(parts, "  ") + "  " +
		m.styles.Help.Render("a add  i ignore  esc cancel")
}

// splitPath derives the output path for a chapter split from the source
// path.
func splitPath(path string) string {
	if path == "" {
		return "untitled_split.xhtml"
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_split" + ext
}
