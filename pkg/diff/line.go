package diff

import "strings"

// lookahead is the resynchronization window of the greedy line scan.
// Tunable; the value is kept for behavioral compatibility with prior
// releases.
const lookahead = 3

// LineKind tags one output line of a line diff.
type LineKind string

const (
	LineSame    LineKind = "same"
	LineAdded   LineKind = "added"
	LineRemoved LineKind = "removed"
)

// Line is one tagged output line. Same lines carry both original line
// numbers; added/removed lines carry one (the other is zero).
type Line struct {
	Kind     LineKind
	Text     string
	LeftNum  int
	RightNum int
}

// Lines computes a readable diff of two line sequences using a greedy
// sequential scan with bounded lookahead. On a mismatch it searches
// forward within the window for a resynchronization point; intervening
// lines become pure insertions or deletions. With no resync the line
// pair becomes one removal plus one addition. This favors readability on
// near-identical inputs over a minimal edit script.
func Lines(left, right []string) []Line {
	var result []Line
	i, j := 0, 0

	for i < len(left) || j < len(right) {
		switch {
		case i >= len(left):
			result = append(result, Line{Kind: LineAdded, Text: right[j], RightNum: j + 1})
			j++
		case j >= len(right):
			result = append(result, Line{Kind: LineRemoved, Text: left[i], LeftNum: i + 1})
			i++
		case left[i] == right[j]:
			result = append(result, Line{Kind: LineSame, Text: left[i], LeftNum: i + 1, RightNum: j + 1})
			i++
			j++
		default:
			// Look ahead on each side for the current line of the other.
			foundLeft, foundRight := -1, -1
			for k := 1; k <= lookahead && j+k < len(right); k++ {
				if right[j+k] == left[i] {
					foundRight = k
					break
				}
			}
			for k := 1; k <= lookahead && i+k < len(left); k++ {
				if left[i+k] == right[j] {
					foundLeft = k
					break
				}
			}

			switch {
			case foundRight > 0 && (foundLeft < 0 || foundRight <= foundLeft):
				for k := 0; k < foundRight; k++ {
					result = append(result, Line{Kind: LineAdded, Text: right[j], RightNum: j + 1})
					j++
				}
			case foundLeft > 0:
				for k := 0; k < foundLeft; k++ {
					result = append(result, Line{Kind: LineRemoved, Text: left[i], LeftNum: i + 1})
					i++
				}
			default:
				result = append(result, Line{Kind: LineRemoved, Text: left[i], LeftNum: i + 1})
				result = append(result, Line{Kind: LineAdded, Text: right[j], RightNum: j + 1})
				i++
				j++
			}
		}
	}

	return result
}

// FormatLines renders a line diff with "  " / "+ " / "- " prefixes.
func FormatLines(lines []Line) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		switch l.Kind {
		case LineSame:
			out = append(out, "  "+l.Text)
		case LineAdded:
			out = append(out, "+ "+l.Text)
		case LineRemoved:
			out = append(out, "- "+l.Text)
		}
	}
	return strings.Join(out, "\n")
}
