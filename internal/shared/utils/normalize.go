package utils

import "golang.org/x/text/cases"

var foldCaser = cases.Fold()

// FoldCase normalizes a string for case-insensitive comparison using
// Unicode case folding, so "Default", "DEFAULT" and "default" all collapse
// to the same lookup value.
func FoldCase(s string) string {
	return foldCaser.String(s)
}
