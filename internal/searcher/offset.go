package searcher

import (
	"codeview/internal/domain"
)

// selectionOffset returns the offset the next search starts from. A
// forward search scans from the selection end, or the document start when
// the selection is ignored. A backward search scans everything before the
// selection start, or the whole document when ignored.
func (s *Service) selectionOffset(text string, dir domain.Direction, ignore bool) int {
	if dir == domain.DirectionDown {
		if ignore {
			return 0
		}
		_, end, _ := s.ed.Selection()
		return end
	}
	if ignore {
		return len(text)
	}
	start, _, _ := s.ed.Selection()
	return start
}

// rebase shifts a match found against a substring into document
// coordinates. Group offsets stay relative to the match start.
func rebase(m domain.MatchRecord, base int) domain.MatchRecord {
	if !m.Found() {
		return m
	}
	m.Start += base
	m.End += base
	return m
}
