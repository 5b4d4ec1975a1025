// Package diff implements the line-based, structural (tree), and CSV
// row diff algorithms shared by the diff tools.
package diff

// NoDifferences is the sentinel rendered when two inputs are equal.
const NoDifferences = "✓ No differences found"

// Kind tags one structural diff entry.
type Kind string

const (
	Added   Kind = "added"
	Removed Kind = "removed"
	Changed Kind = "changed"
)

// Entry is one difference at a tree location. Path is a dotted/bracketed
// accessor (e.g. "user.tags[2]"); the tree root is the empty string and
// is rendered as "$".
type Entry struct {
	Kind     Kind
	Path     string
	Value    interface{} // Added/Removed
	OldValue interface{} // Changed
	NewValue interface{} // Changed
}
