package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// helpContent renders the full key and settings reference paged by `h`.
func (m *Model) helpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	row := func(key, desc string) string {
		return fmt.Sprintf("  %-18s %s\n", keyStyle.Render(key), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("Codeview Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	help.WriteString(row("/", "Search down"))
	help.WriteString(row("?", "Search up"))
	help.WriteString(row("n", "Repeat last search"))
	help.WriteString(row("N", "Repeat in opposite direction"))
	help.WriteString(row("c", "Count matches of last pattern"))
	help.WriteString(row("w", "Toggle wraparound"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Replace"))
	help.WriteString("\n")
	help.WriteString(row("r", "Replace current match"))
	help.WriteString(row("R", "Replace all matches"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Spelling"))
	help.WriteString("\n")
	help.WriteString(row("s", "Toggle spell-check search mode"))
	help.WriteString(row("m", "Jump to next misspelled word"))
	help.WriteString(row("z", "Suggestions for word under cursor"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Editing"))
	help.WriteString("\n")
	help.WriteString(row("u", "Undo"))
	help.WriteString(row("Ctrl+R", "Redo"))
	help.WriteString(row("Ctrl+S", "Save"))
	help.WriteString(row("X", "Split chapter at cursor"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("View"))
	help.WriteString("\n")
	help.WriteString(row("j/k, ↓/↑", "Scroll down/up"))
	help.WriteString(row("g/G", "Go to top/bottom"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Prompts"))
	help.WriteString("\n")
	help.WriteString(row("↑/↓", "Recall pattern/replacement history"))
	help.WriteString(row("Enter", "Submit"))
	help.WriteString(row("Esc", "Cancel"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(row("h", "This help"))
	help.WriteString(fmt.Sprintf("  %-18s %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	return help.String()
}

// fetchHelpPager returns a command that pages help through ov.
func (m *Model) fetchHelpPager() tea.Cmd {
	content := m.helpContent()
	return func() tea.Msg {
		return helpPagerMsg{err: m.showInPager(content)}
	}
}

// showInPager releases the terminal, runs ov over content, then restores.
func (m *Model) showInPager(content string) error {
	if m.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := m.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Give ov time to fully exit before taking the terminal back.
		time.Sleep(100 * time.Millisecond)
		_ = m.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}
