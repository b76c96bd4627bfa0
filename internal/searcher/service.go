package searcher

import (
	"unicode/utf8"

	"codeview/internal/domain"
	"codeview/internal/editor"
	"codeview/internal/eventbus"
	"codeview/internal/pattern"
)

// displayContextLines is how far the selection is stretched above and
// below a match before collapsing back onto it, so the viewport ends up
// showing the match with surrounding context.
const displayContextLines = 10

// Editor is the buffer surface the searcher drives. *editor.Buffer
// satisfies it.
type Editor interface {
	Text() string
	Selection() (start, end int, text string)
	SetSelection(start, end int, anchorAtEnd bool)
	ClearSelection()
	CursorPosition() int
	SetCursor(pos int)
	ReplaceRange(start, end int, newText string)
	ReplaceDocumentText(text string)
	OnTextChanged(fn func())
}

// SpellScanner locates misspelled words in a text slice. *spell.Scanner
// satisfies it. Returned offsets are relative to start.
type SpellScanner interface {
	FirstMisspelled(text string, start, end int, wordPattern string) (domain.MatchRecord, error)
	LastMisspelled(text string, start, end int, wordPattern string) (domain.MatchRecord, error)
	CountMisspelled(text string, start, end int, wordPattern string) (int, error)
}

// Service runs regex and spell-check searches against an editor buffer
// and performs single and whole-document replacements. It remembers the
// last match so that ReplaceSelected only ever rewrites text the user has
// actually seen; any buffer mutation clears that memory.
type Service struct {
	ed       Editor
	patterns *pattern.Cache
	spell    SpellScanner
	bus      eventbus.EventBus

	lastMatch domain.MatchRecord
}

// NewService creates a searcher bound to ed. It registers a text-changed
// hook so every buffer mutation, including the searcher's own
// replacements, invalidates the remembered match.
func NewService(ed Editor, patterns *pattern.Cache, spellScanner SpellScanner, bus eventbus.EventBus) *Service {
	s := &Service{
		ed:        ed,
		patterns:  patterns,
		spell:     spellScanner,
		bus:       bus,
		lastMatch: domain.NoMatch(),
	}
	ed.OnTextChanged(s.invalidate)
	return s
}

func (s *Service) invalidate() {
	s.lastMatch = domain.NoMatch()
}

// LastMatch returns the match found by the most recent search, or a
// not-found record if there is none or the buffer changed since.
func (s *Service) LastMatch() domain.MatchRecord {
	return s.lastMatch
}

// FindNext searches for pat from the current selection in the given
// direction and selects the match it lands on. checkSpelling makes pat a
// word pattern and only misspelled words count as matches.
// ignoreSelectionOffset starts the search from the document boundary
// instead of the selection. With wrap set, a miss retries once from the
// opposite end and announces the wraparound on the bus.
//
// Returns false with a nil error when nothing matched; an error means pat
// did not compile.
func (s *Service) FindNext(pat string, dir domain.Direction, checkSpelling, ignoreSelectionOffset, wrap bool) (bool, error) {
	text := s.ed.Text()
	selOffset := s.selectionOffset(text, dir, ignoreSelectionOffset)

	var (
		match domain.MatchRecord
		base  int
		err   error
	)
	if dir == domain.DirectionUp {
		if checkSpelling {
			// Pull the scan end back one character so the word at the
			// anchor is not re-matched; stepping bytes would split a
			// multibyte rune.
			end := selOffset
			if end > 0 {
				end--
				for end > 0 && !utf8.RuneStart(text[end]) {
					end--
				}
			}
			match, err = s.spell.LastMisspelled(text, 0, end, pat)
		} else {
			var matcher *pattern.Matcher
			matcher, err = s.patterns.GetMatcher(pat)
			if err == nil {
				match = matcher.LastMatch(text[:selOffset])
			}
		}
	} else {
		base = selOffset
		if checkSpelling {
			match, err = s.spell.FirstMisspelled(text, selOffset, len(text), pat)
		} else {
			var matcher *pattern.Matcher
			matcher, err = s.patterns.GetMatcher(pat)
			if err == nil {
				match = matcher.FirstMatch(text[selOffset:])
			}
		}
	}
	if err != nil {
		s.lastMatch = domain.NoMatch()
		return false, err
	}

	s.lastMatch = rebase(match, base)

	if match.Found() {
		s.selectMatch(s.lastMatch, dir, text)
		if s.bus != nil {
			s.bus.Publish(eventbus.MatchFoundEvent{
				Pattern:   pat,
				Start:     s.lastMatch.Start,
				End:       s.lastMatch.End,
				Direction: dir,
			})
		}
		return true, nil
	}

	if wrap {
		found, err := s.FindNext(pat, dir, checkSpelling, true, false)
		if err != nil {
			return false, err
		}
		if found {
			if s.bus != nil {
				s.bus.Publish(eventbus.SearchWrappedEvent{Pattern: pat, Direction: dir})
			}
			return true, nil
		}
	}
	return false, nil
}

// Count returns how many times pat matches in the whole document, or with
// checkSpelling how many misspelled words the word pattern finds.
func (s *Service) Count(pat string, checkSpelling bool) (int, error) {
	text := s.ed.Text()
	if checkSpelling {
		return s.spell.CountMisspelled(text, 0, len(text), pat)
	}
	matcher, err := s.patterns.GetMatcher(pat)
	if err != nil {
		return 0, err
	}
	return len(matcher.AllMatches(text)), nil
}

// ReplaceSelected replaces the current selection with replacement,
// expanded against the remembered match's capture groups, but only when
// the selection is exactly that match. In spelling mode, or when the
// remembered match is stale, the selection is re-matched against pat
// first. A backward direction leaves the cursor before the inserted text
// so the next backward search does not revisit it.
//
// Returns false with a nil error when the selection does not line up with
// a match or replacement names a capture group the match does not have.
func (s *Service) ReplaceSelected(pat, replacement string, dir domain.Direction, checkSpelling bool) (bool, error) {
	matcher, err := s.patterns.GetMatcher(pat)
	if err != nil {
		return false, err
	}

	selStart, _, selectedText := s.ed.Selection()

	if checkSpelling || !s.selectionIsLastMatch(selStart, selectedText) {
		if m := matcher.FirstMatch(selectedText); m.Found() {
			s.lastMatch = rebase(m, selStart)
			selectedText = selectedText[m.Start:m.End]
		}
	}

	if !s.selectionIsLastMatch(selStart, selectedText) {
		return false, nil
	}

	replaced, ok := matcher.Replace(selectedText, s.lastMatch.Groups, replacement)
	if !ok {
		return false, nil
	}

	s.ed.ReplaceRange(selStart, selStart+len(selectedText), replaced)
	if dir == domain.DirectionUp {
		s.ed.SetCursor(selStart)
	}
	return true, nil
}

// ReplaceAll replaces every match of pat in the document and returns how
// many were rewritten. All replacements are committed as one document
// rewrite so a single undo restores the original text. Matches whose
// replacement names a missing capture group are skipped. The cursor is
// restored to the old selection start, clamped to the new length.
func (s *Service) ReplaceAll(pat, replacement string) (int, error) {
	matcher, err := s.patterns.GetMatcher(pat)
	if err != nil {
		return 0, err
	}

	text := s.ed.Text()
	matches := matcher.AllMatches(text)

	// Applying from the last match backward keeps the earlier offsets
	// valid as the text shrinks or grows.
	count := 0
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		replaced, ok := matcher.Replace(text[m.Start:m.End], m.Groups, replacement)
		if !ok {
			continue
		}
		text = text[:m.Start] + replaced + text[m.End:]
		count++
	}

	if count > 0 {
		cursor, _, _ := s.ed.Selection()
		s.ed.ReplaceDocumentText(text)
		if cursor > len(text) {
			cursor = len(text)
		}
		s.ed.SetCursor(cursor)
	}

	if s.bus != nil {
		s.bus.Publish(eventbus.ReplaceAllCompletedEvent{Pattern: pat, Replaced: count})
	}
	return count, nil
}

func (s *Service) selectionIsLastMatch(selStart int, selectedText string) bool {
	return s.lastMatch.Found() &&
		s.lastMatch.Start == selStart &&
		s.lastMatch.End == selStart+len(selectedText)
}

// selectMatch selects the match, first stretching the selection
// displayContextLines beyond it in each direction so the viewport settles
// with context around the match. A backward match keeps its anchor at the
// end so the next search continues upward from the match start.
func (s *Service) selectMatch(m domain.MatchRecord, dir domain.Direction, text string) {
	if dir == domain.DirectionUp {
		down := editor.DownLines(text, m.End, displayContextLines)
		s.ed.SetSelection(m.End, down, false)
		up := editor.UpLines(text, m.End, displayContextLines)
		s.ed.SetSelection(up, m.End, true)
		s.ed.SetSelection(m.Start, m.End, true)
		return
	}
	up := editor.UpLines(text, m.Start, displayContextLines)
	s.ed.SetSelection(up, m.Start, true)
	down := editor.DownLines(text, m.Start, displayContextLines)
	s.ed.SetSelection(m.Start, down, false)
	s.ed.SetSelection(m.Start, m.End, false)
}
