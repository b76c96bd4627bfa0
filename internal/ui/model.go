package ui

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"codeview/internal/config"
	"codeview/internal/domain"
	"codeview/internal/editor"
	"codeview/internal/history"
	"codeview/internal/pattern"
	"codeview/internal/searcher"
	"codeview/internal/spell"
)

// mode is the input mode the model is in. Prompt modes route keys into
// the text input; normal mode and the suggestion picker bind keys
// directly.
type mode int

const (
	modeNormal mode = iota
	modeSearchDown
	modeSearchUp
	modeReplace
	modeReplaceAll
	modeSuggest
)

// Model is the main TUI model
type Model struct {
	buf      *editor.Buffer
	search   *searcher.Service
	checker  *spell.Checker
	patterns *pattern.Cache
	cfg      *config.Config
	styles   *Styles

	mode        mode
	textInput   textinput.Model
	promptLabel string

	patternHist *history.Store
	replaceHist *history.Store
	histIdx     int

	// search state carried between keystrokes
	lastPattern   string
	lastDirection domain.Direction
	checkSpelling bool
	wrap          bool

	// suggestion picker state
	suggestions  []string
	suggestStart int
	suggestEnd   int
	suggestWord  string

	status      string
	statusLevel statusLevel

	width   int
	height  int
	top     int // first visible line
	events  chan domain.DomainEvent
	showNum bool

	program *tea.Program // for terminal handoff to the help pager
}

// New creates the TUI model. events carries bus notifications into the
// update loop; main wires a bus subscription to it.
func New(buf *editor.Buffer, search *searcher.Service, checker *spell.Checker,
	patterns *pattern.Cache, cfg *config.Config, events chan domain.DomainEvent) *Model {

	ti := textinput.New()
	ti.CharLimit = 512

	return &Model{
		buf:           buf,
		search:        search,
		checker:       checker,
		patterns:      patterns,
		cfg:           cfg,
		styles:        NewStyles(),
		textInput:     ti,
		patternHist:   history.NewStore(history.DefaultLimit),
		replaceHist:   history.NewStore(history.DefaultLimit),
		lastDirection: domain.DirectionDown,
		checkSpelling: cfg.Search.CheckSpelling,
		wrap:          cfg.Search.Wrap,
		showNum:       cfg.UISettings.ShowLineNumbers,
		events:        events,
		width:         80,
		height:        24,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent blocks on the bus forwarding channel.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return domainEventMsg{event: ev}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case domainEventMsg:
		m.handleEvent(msg.event)
		return m, m.waitForEvent()

	case statusMsg:
		m.status = msg.text
		m.statusLevel = msg.level
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("UI: help pager failed: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleEvent(ev domain.DomainEvent) {
	switch e := ev.(type) {
	case domain.SearchWrappedEvent:
		m.setStatus(fmt.Sprintf("search wrapped (%s)", e.Direction), statusWarning)
	case domain.ReplaceAllCompletedEvent:
		m.setStatus(fmt.Sprintf("replaced %d occurrences", e.Replaced), statusSuccess)
	case domain.FileSavedEvent:
		m.setStatus(fmt.Sprintf("saved %s", e.Path), statusSuccess)
	case domain.DictionaryLoadedEvent:
		log.Printf("UI: dictionary ready (%d words)", e.Words)
	case domain.ErrorEvent:
		m.setStatus(e.Message, statusError)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeNormal:
		return m.handleNormalKey(msg)
	case modeSuggest:
		return m.handleSuggestKey(msg)
	default:
		return m.handlePromptKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if m.cfg.UISettings.AutosaveOnExit && m.buf.Dirty() && m.buf.Path() != "" {
			if err := m.buf.Save(); err != nil {
				m.setStatus(err.Error(), statusError)
				return m, nil
			}
		}
		return m, tea.Quit

	case "/":
		m.enterPrompt(modeSearchDown, "find: ")
	case "?":
		m.enterPrompt(modeSearchUp, "find up: ")
	case "n":
		m.findNext(m.lastDirection)
	case "N":
		m.findNext(m.lastDirection.Opposite())
	case "r":
		if m.lastPattern == "" {
			m.setStatus("no search pattern", statusWarning)
			return m, nil
		}
		m.enterPrompt(modeReplace, "replace with: ")
	case "R":
		if m.lastPattern == "" {
			m.setStatus("no search pattern", statusWarning)
			return m, nil
		}
		m.enterPrompt(modeReplaceAll, "replace all with: ")
	case "c":
		m.countMatches()
	case "s":
		m.checkSpelling = !m.checkSpelling
		m.setStatus(fmt.Sprintf("spell-check search: %v", m.checkSpelling), statusInfo)
	case "w":
		m.wrap = !m.wrap
		m.setStatus(fmt.Sprintf("wrap: %v", m.wrap), statusInfo)
	case "m":
		m.findMisspelled()
	case "z":
		m.openSuggestions()
	case "u":
		if m.buf.Undo() {
			m.setStatus("undone", statusInfo)
		} else {
			m.setStatus("nothing to undo", statusWarning)
		}
	case "ctrl+r":
		if m.buf.Redo() {
			m.setStatus("redone", statusInfo)
		} else {
			m.setStatus("nothing to redo", statusWarning)
		}
	case "ctrl+s":
		if err := m.buf.Save(); err != nil {
			m.setStatus(err.Error(), statusError)
		}
	case "X":
		m.splitChapter()
	case "h":
		return m, m.fetchHelpPager()
	case "j", "down":
		m.top++
	case "k", "up":
		if m.top > 0 {
			m.top--
		}
	case "g":
		m.top = 0
	case "G":
		m.top = countLines(m.buf.Text())
	}
	m.clampScroll()
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.textInput.Blur()
		return m, nil
	case "enter":
		text := m.textInput.Value()
		mode := m.mode
		m.mode = modeNormal
		m.textInput.Blur()
		m.submitPrompt(mode, text)
		return m, nil
	case "up":
		if entry := m.promptHistory().At(m.histIdx + 1); entry != "" {
			m.histIdx++
			m.textInput.SetValue(entry)
			m.textInput.CursorEnd()
		}
		return m, nil
	case "down":
		if m.histIdx > 0 {
			m.histIdx--
			m.textInput.SetValue(m.promptHistory().At(m.histIdx))
			m.textInput.CursorEnd()
		} else if m.histIdx == 0 {
			m.histIdx = -1
			m.textInput.SetValue("")
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// promptHistory returns the history store for the current prompt kind.
func (m *Model) promptHistory() *history.Store {
	if m.mode == modeReplace || m.mode == modeReplaceAll {
		return m.replaceHist
	}
	return m.patternHist
}

func (m *Model) submitPrompt(from mode, text string) {
	switch from {
	case modeReplace, modeReplaceAll:
		m.replaceHist.Add(text)
	default:
		m.patternHist.Add(text)
	}

	switch from {
	case modeSearchDown:
		m.lastPattern = text
		m.lastDirection = domain.DirectionDown
		m.findNext(domain.DirectionDown)
	case modeSearchUp:
		m.lastPattern = text
		m.lastDirection = domain.DirectionUp
		m.findNext(domain.DirectionUp)
	case modeReplace:
		ok, err := m.search.ReplaceSelected(m.lastPattern, text, m.lastDirection, m.checkSpelling)
		if err != nil {
			m.setStatus(err.Error(), statusError)
			return
		}
		if !ok {
			m.setStatus("selection is not a match", statusWarning)
			return
		}
		m.setStatus("replaced", statusSuccess)
	case modeReplaceAll:
		n, err := m.search.ReplaceAll(m.lastPattern, text)
		if err != nil {
			m.setStatus(err.Error(), statusError)
			return
		}
		m.setStatus(fmt.Sprintf("replaced %d occurrences", n), statusSuccess)
	}
}

func (m *Model) handleSuggestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.mode = modeNormal
		return m, nil
	case "a":
		m.checker.AddToUserDictionary(m.suggestWord)
		m.setStatus(fmt.Sprintf("added %q to dictionary", m.suggestWord), statusSuccess)
		m.mode = modeNormal
		return m, nil
	case "i":
		m.checker.IgnoreWord(m.suggestWord)
		m.setStatus(fmt.Sprintf("ignoring %q", m.suggestWord), statusInfo)
		m.mode = modeNormal
		return m, nil
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		// 1..9 pick the first nine suggestions, 0 picks the tenth.
		idx := int(key[0] - '1')
		if key == "0" {
			idx = 9
		}
		if idx < len(m.suggestions) {
			m.buf.ReplaceRange(m.suggestStart, m.suggestEnd, m.suggestions[idx])
			m.setStatus(fmt.Sprintf("replaced with %q", m.suggestions[idx]), statusSuccess)
		}
		m.mode = modeNormal
	}
	return m, nil
}

// enterPrompt switches into a text-input mode. The label is rendered by
// the view, not by the text input itself.
func (m *Model) enterPrompt(to mode, label string) {
	m.mode = to
	m.histIdx = -1
	m.promptLabel = label
	m.textInput.Reset()
	m.textInput.Prompt = ""
	m.textInput.Focus()
}

func (m *Model) findNext(dir domain.Direction) {
	if m.lastPattern == "" {
		m.setStatus("no search pattern", statusWarning)
		return
	}
	found, err := m.search.FindNext(m.lastPattern, dir, m.checkSpelling, false, m.wrap)
	if err != nil {
		m.setStatus(fmt.Sprintf("invalid pattern: %v", err), statusError)
		return
	}
	if !found {
		m.setStatus(fmt.Sprintf("no match for %q", m.lastPattern), statusWarning)
		return
	}
	match := m.search.LastMatch()
	m.scrollTo(match.Start)
	m.setStatus(fmt.Sprintf("match at %d-%d", match.Start, match.End), statusInfo)
}

// findMisspelled jumps to the next misspelled word using the configured
// word pattern.
func (m *Model) findMisspelled() {
	found, err := m.search.FindNext(m.cfg.WordPattern, domain.DirectionDown, true, false, m.wrap)
	if err != nil {
		m.setStatus(fmt.Sprintf("invalid word pattern: %v", err), statusError)
		return
	}
	if !found {
		m.setStatus("no misspelled words", statusSuccess)
		return
	}
	match := m.search.LastMatch()
	m.scrollTo(match.Start)
	_, _, word := m.buf.Selection()
	m.setStatus(fmt.Sprintf("misspelled: %q", word), statusWarning)
}

func (m *Model) countMatches() {
	if m.lastPattern == "" && !m.checkSpelling {
		m.setStatus("no search pattern", statusWarning)
		return
	}
	pat := m.lastPattern
	if m.checkSpelling && pat == "" {
		pat = m.cfg.WordPattern
	}
	n, err := m.search.Count(pat, m.checkSpelling)
	if err != nil {
		m.setStatus(fmt.Sprintf("invalid pattern: %v", err), statusError)
		return
	}
	m.setStatus(fmt.Sprintf("%d matches", n), statusInfo)
}

// openSuggestions shows spelling suggestions for the selected word.
func (m *Model) openSuggestions() {
	start, end, word := m.buf.Selection()
	if word == "" {
		m.setStatus("select a word first (try m)", statusWarning)
		return
	}
	if m.checker.CheckWord(word) {
		m.setStatus(fmt.Sprintf("%q is spelled correctly", word), statusSuccess)
		return
	}
	m.suggestions = m.checker.Suggest(word)
	m.suggestStart = start
	m.suggestEnd = end
	m.suggestWord = word
	m.mode = modeSuggest
}

func (m *Model) splitChapter() {
	chapter, err := editor.SplitChapter(m.buf, m.patterns)
	if err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	path := splitPath(m.buf.Path())
	if err := os.WriteFile(path, []byte(chapter), 0644); err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	m.setStatus(fmt.Sprintf("split chapter written to %s", path), statusSuccess)
}

func (m *Model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

// scrollTo keeps the line holding offset visible.
func (m *Model) scrollTo(offset int) {
	line := countLines(m.buf.Text()[:offset])
	visible := m.docHeight()
	if line < m.top {
		m.top = line
	} else if line >= m.top+visible {
		m.top = line - visible + 1
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	max := countLines(m.buf.Text()) - m.docHeight() + 1
	if m.top > max {
		m.top = max
	}
	if m.top < 0 {
		m.top = 0
	}
}

// docHeight is the number of document lines on screen, leaving room for
// the title, status and prompt lines.
func (m *Model) docHeight() int {
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

func countLines(text string) int {
	return strings.Count(text, "\n")
}
