package pattern

import (
	"strings"

	"codeview/internal/domain"
)

// Replace expands template against a matched substring and its capture
// group offsets (relative to the matched substring, group 0 = the whole
// match). Back-references are written \1 .. \99; \\ escapes a literal
// backslash. Referencing a group beyond the capture count, or one that did
// not participate in the match, fails the whole expansion.
func (m *Matcher) Replace(matched string, groups []domain.GroupOffset, template string) (string, bool) {
	var out strings.Builder
	out.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '\\' {
			out.WriteByte(c)
			continue
		}
		if i+1 >= len(template) {
			out.WriteByte(c)
			break
		}
		next := template[i+1]
		switch {
		case next == '\\':
			out.WriteByte('\\')
			i++
		case next >= '0' && next <= '9':
			n := int(next - '0')
			consumed := 1
			// A second digit belongs to the reference only when the
			// two-digit group exists, matching PCRE's behavior.
			if i+2 < len(template) && template[i+2] >= '0' && template[i+2] <= '9' {
				wide := n*10 + int(template[i+2]-'0')
				if wide < len(groups) {
					n = wide
					consumed = 2
				}
			}
			if n >= len(groups) {
				return "", false
			}
			g := groups[n]
			if g.Start == -1 {
				return "", false
			}
			if g.Start < 0 || g.End > len(matched) || g.Start > g.End {
				return "", false
			}
			out.WriteString(matched[g.Start:g.End])
			i += consumed
		default:
			// Unknown escape, keep it verbatim.
			out.WriteByte('\\')
			out.WriteByte(next)
			i++
		}
	}
	return out.String(), true
}
