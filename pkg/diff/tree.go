package diff

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Trees recursively compares two tree values (scalars, []interface{}
// lists, map[string]interface{} maps, as produced by JSON or YAML
// decoding into interface{}). Entries appear in path order: array
// indices ascending, map keys sorted.
func Trees(a, b interface{}) []Entry {
	var entries []Entry
	compareTrees(a, b, "", &entries)
	return entries
}

// SortKeys returns a copy of the tree with all map keys recursively
// sorted, so that key-order-only differences never surface. Go maps are
// unordered; the value of the pre-pass here is canonicalizing the
// rendered form of nested values.
func SortKeys(v interface{}) interface{} {
	switch tv := v.(type) {
	case []interface{}:
		sorted := make([]interface{}, len(tv))
		for i, item := range tv {
			sorted[i] = SortKeys(item)
		}
		return sorted
	case map[string]interface{}:
		sorted := make(map[string]interface{}, len(tv))
		for key, val := range tv {
			sorted[key] = SortKeys(val)
		}
		return sorted
	default:
		return v
	}
}

func compareTrees(a, b interface{}, path string, out *[]Entry) {
	if reflect.DeepEqual(a, b) {
		return
	}

	aList, aIsList := a.([]interface{})
	bList, bIsList := b.([]interface{})
	if aIsList && bIsList {
		longer := len(aList)
		if len(bList) > longer {
			longer = len(bList)
		}
		for i := 0; i < longer; i++ {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			switch {
			case i >= len(aList):
				*out = append(*out, Entry{Kind: Added, Path: itemPath, Value: bList[i]})
			case i >= len(bList):
				*out = append(*out, Entry{Kind: Removed, Path: itemPath, Value: aList[i]})
			default:
				compareTrees(aList[i], bList[i], itemPath, out)
			}
		}
		return
	}

	aMap, aIsMap := a.(map[string]interface{})
	bMap, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		keys := make([]string, 0, len(aMap)+len(bMap))
		seen := make(map[string]bool, len(aMap)+len(bMap))
		for key := range aMap {
			keys = append(keys, key)
			seen[key] = true
		}
		for key := range bMap {
			if !seen[key] {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)

		for _, key := range keys {
			keyPath := key
			if path != "" {
				keyPath = path + "." + key
			}
			oldVal, inOld := aMap[key]
			newVal, inNew := bMap[key]
			switch {
			case !inOld:
				*out = append(*out, Entry{Kind: Added, Path: keyPath, Value: newVal})
			case !inNew:
				*out = append(*out, Entry{Kind: Removed, Path: keyPath, Value: oldVal})
			default:
				compareTrees(oldVal, newVal, keyPath, out)
			}
		}
		return
	}

	// Mismatched scalars or mismatched runtime types.
	*out = append(*out, Entry{Kind: Changed, Path: path, OldValue: a, NewValue: b})
}

// FormatEntries renders structural diff entries with the "+ path: value",
// "- path: value", and "~ path:" conventions, using format to render
// values. Empty input renders the no-differences sentinel.
func FormatEntries(entries []Entry, format func(v interface{}) string) string {
	if len(entries) == 0 {
		return NoDifferences
	}

	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		path := e.Path
		if path == "" {
			path = "$"
		}
		switch e.Kind {
		case Added:
			blocks = append(blocks, fmt.Sprintf("+ %s: %s", path, format(e.Value)))
		case Removed:
			blocks = append(blocks, fmt.Sprintf("- %s: %s", path, format(e.Value)))
		case Changed:
			blocks = append(blocks, fmt.Sprintf("~ %s:\n    - %s\n    + %s", path, format(e.OldValue), format(e.NewValue)))
		}
	}
	return strings.Join(blocks, "\n\n")
}
