package diff

import "encoding/json"

// similarityThreshold is the fraction of identical cells above which an
// unmatched row pair is reclassified as changed rather than one removal
// plus one addition. Tunable; the value is kept for behavioral
// compatibility.
const similarityThreshold = 0.5

// IndexedRow is a record with its 1-based position within the data rows.
type IndexedRow struct {
	Index int
	Row   []string
}

// RowChange pairs a left row with the similar right row it became,
// listing the differing cell indices.
type RowChange struct {
	LeftIndex  int
	RightIndex int
	Left       []string
	Right      []string
	Cells      []int
}

// RowDelta is the result of comparing two record sequences.
type RowDelta struct {
	HeaderMismatch bool
	LeftHeader     []string
	RightHeader    []string
	Added          []IndexedRow
	Removed        []IndexedRow
	Changed        []RowChange
}

// Empty reports whether the delta contains no differences.
func (d RowDelta) Empty() bool {
	return !d.HeaderMismatch && len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

type rowSet struct {
	byKey map[string]IndexedRow
	order []string
}

func newRowSet(rows [][]string) rowSet {
	set := rowSet{byKey: make(map[string]IndexedRow, len(rows))}
	for i, row := range rows {
		key := rowKey(row)
		if _, seen := set.byKey[key]; !seen {
			set.order = append(set.order, key)
		}
		// Last occurrence wins for duplicate rows, matching set semantics.
		set.byKey[key] = IndexedRow{Index: i + 1, Row: row}
	}
	return set
}

func (s rowSet) has(key string) bool {
	_, ok := s.byKey[key]
	return ok
}

// Rows compares two record sequences. With useHeader the first record of
// each side is the column schema and must match exactly; a mismatch
// short-circuits with a header report instead of a row-level diff.
// Remaining records are matched by exact content; unmatched left rows
// are then paired with unmatched right rows of the same width scoring
// above the similarity threshold and reported as changed.
func Rows(left, right [][]string, useHeader bool) RowDelta {
	var delta RowDelta

	dataLeft, dataRight := left, right
	if useHeader {
		// A side with no records has no header row.
		if len(left) > 0 {
			delta.LeftHeader = left[0]
			dataLeft = left[1:]
		}
		if len(right) > 0 {
			delta.RightHeader = right[0]
			dataRight = right[1:]
		}

		if !rowsEqual(delta.LeftHeader, delta.RightHeader) {
			delta.HeaderMismatch = true
			return delta
		}
	}

	leftSet := newRowSet(dataLeft)
	rightSet := newRowSet(dataRight)
	matchedRight := make(map[string]bool)

	for _, key := range leftSet.order {
		entry := leftSet.byKey[key]
		if rightSet.has(key) {
			continue
		}

		if similarKey, ok := findSimilar(entry.Row, leftSet, rightSet, matchedRight); ok {
			similar := rightSet.byKey[similarKey]
			delta.Changed = append(delta.Changed, RowChange{
				LeftIndex:  entry.Index,
				RightIndex: similar.Index,
				Left:       entry.Row,
				Right:      similar.Row,
				Cells:      cellDiffs(entry.Row, similar.Row),
			})
			matchedRight[similarKey] = true
			continue
		}

		delta.Removed = append(delta.Removed, IndexedRow{Index: entry.Index, Row: entry.Row})
	}

	for _, key := range rightSet.order {
		entry := rightSet.byKey[key]
		if leftSet.has(key) || matchedRight[key] {
			continue
		}
		delta.Added = append(delta.Added, IndexedRow{Index: entry.Index, Row: entry.Row})
	}

	return delta
}

// findSimilar scans unmatched right rows of the same width for the best
// cell-level similarity strictly above the threshold.
func findSimilar(row []string, leftSet, rightSet rowSet, matched map[string]bool) (string, bool) {
	bestKey := ""
	bestScore := 0.0
	found := false

	for _, key := range rightSet.order {
		if matched[key] || leftSet.has(key) {
			continue
		}
		candidate := rightSet.byKey[key]
		if len(candidate.Row) != len(row) {
			continue
		}

		matches := 0
		for i := range row {
			if row[i] == candidate.Row[i] {
				matches++
			}
		}
		score := float64(matches) / float64(len(row))
		if score > similarityThreshold && score > bestScore {
			bestScore = score
			bestKey = key
			found = true
		}
	}

	return bestKey, found
}

func rowKey(row []string) string {
	key, _ := json.Marshal(row)
	return string(key)
}

func rowsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cellDiffs(left, right []string) []int {
	var cells []int
	for i := range left {
		if left[i] != right[i] {
			cells = append(cells, i)
		}
	}
	return cells
}
