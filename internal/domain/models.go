package domain

// GroupOffset is the byte range of one capture group within a match.
// Start is -1 when the group did not participate in the match.
type GroupOffset struct {
	Start int
	End   int
}

// MatchRecord is the result of one pattern application: the matched byte
// range plus the ranges of any capture groups, all relative to the text
// that was searched. Start == -1 signals "no match"; that is a normal
// negative result, not an error.
type MatchRecord struct {
	Start  int
	End    int
	Groups []GroupOffset
}

// NoMatch returns the sentinel record for a failed match.
func NoMatch() MatchRecord {
	return MatchRecord{Start: -1, End: -1}
}

// Found reports whether the record describes an actual match.
func (m MatchRecord) Found() bool {
	return m.Start != -1
}

// Direction is the direction a search moves through the document.
type Direction int

const (
	// DirectionDown searches forward, toward the end of the document.
	DirectionDown Direction = iota
	// DirectionUp searches backward, toward the start of the document.
	DirectionUp
)

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == DirectionUp {
		return DirectionDown
	}
	return DirectionUp
}

func (d Direction) String() string {
	if d == DirectionUp {
		return "up"
	}
	return "down"
}

// Selection describes the current editor selection. Start <= End; when
// nothing is selected both equal the cursor position. AnchorAtEnd records
// the selection orientation: true means the active end is Start, so a
// backward search keeps walking up from the match it just found.
type Selection struct {
	Start       int
	End         int
	AnchorAtEnd bool
}
