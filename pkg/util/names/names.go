package names

import "regexp"

var nonAlnum = regexp.MustCompile("[^a-zA-Z0-9]+")

// Alphanumeric strips every character that is not a letter or a digit.
// It is used to turn free-form task identifiers into resource-safe names.
func Alphanumeric(s string) string {
	return nonAlnum.ReplaceAllString(s, "")
}
