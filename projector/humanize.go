package projector

import (
	"strings"
	"unicode"

	"github.com/BenLubar/memoize"
)

var knownKeys = map[string]string{
	"id":        "ID",
	"ethnicity": "Ethnicity",
	"gender":    "Gender",
	"age":       "Age",
	"location":  "Location",
	"bbtype":    "BB Type",
	"wfreq":     "Wash Freq (wk)",
}

var memoizedHumanize = memoize.Memoize(humanize)

// HumanizeKey turns a metadata field name into a table label. Known keys have
// fixed labels; other keys have underscores replaced with spaces and every
// word capitalized.
func HumanizeKey(key string) string {
	return memoizedHumanize.(func(string) string)(key)
}

func humanize(key string) string {
	if label, ok := knownKeys[key]; ok {
		return label
	}

	var sb strings.Builder
	prevWord := false
	for _, r := range strings.ReplaceAll(key, "_", " ") {
		word := isWordRune(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		sb.WriteRune(r)
		prevWord = word
	}

	return sb.String()
}

// isWordRune matches the ASCII word class: letters, digits and underscore.
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
