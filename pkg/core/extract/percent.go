// Package extract pulls numeric facts out of free-text model answers.
package extract

import (
	"regexp"
	"strconv"
)

// percentPattern matches digits, an optional decimal part, and an immediately
// following percent sign, e.g. "7%" or "12.5%".
var percentPattern = regexp.MustCompile(`(\d+(\.\d+)?)%`)

// Percentage returns the first "<number>%" token in text as a float, scanning
// left to right. Multiple percentages are not aggregated; only the first one
// counts. The flag is false when no token exists.
func Percentage(text string) (float64, bool) {
	m := percentPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
