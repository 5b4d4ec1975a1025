package tool

import "strings"

// Category groups related tools for browsing.
type Category string

const (
	CategoryPDF      Category = "pdf"
	CategoryConvert  Category = "convert"
	CategoryDiff     Category = "diff"
	CategoryFormat   Category = "format"
	CategoryValidate Category = "validate"
	CategoryCrypto   Category = "crypto"
	CategoryTime     Category = "time"
	CategoryImage    Category = "image"
	CategoryArchive  Category = "archive"
	CategoryDev      Category = "dev"
	CategoryText     Category = "text"
)

// AllCategories returns all valid tool categories
func AllCategories() []Category {
	return []Category{
		CategoryPDF,
		CategoryConvert,
		CategoryDiff,
		CategoryFormat,
		CategoryValidate,
		CategoryCrypto,
		CategoryTime,
		CategoryImage,
		CategoryArchive,
		CategoryDev,
		CategoryText,
	}
}

// IsValidCategory checks if a category is valid
func IsValidCategory(category string) bool {
	cat := Category(strings.ToLower(category))
	for _, valid := range AllCategories() {
		if cat == valid {
			return true
		}
	}
	return false
}

var categoryLabels = map[Category]string{
	CategoryPDF:      "PDF",
	CategoryConvert:  "Convert",
	CategoryDiff:     "Diff",
	CategoryFormat:   "Format",
	CategoryValidate: "Validate",
	CategoryCrypto:   "Encode/Hash",
	CategoryTime:     "Time",
	CategoryImage:    "Image",
	CategoryArchive:  "Archive",
	CategoryDev:      "Dev",
	CategoryText:     "Text",
}

// Label returns the display label for a category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
