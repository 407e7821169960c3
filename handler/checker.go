package handler

import "strings"

// normalize trims the whole text and turns CRLF into LF. Trailing spaces
// inside the text are kept.
func normalize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
}

// CheckOutput reports whether the program output matches the expected output
// exactly after normalization.
func CheckOutput(userOut string, expectedOut string) bool {
	return normalize(userOut) == normalize(expectedOut)
}
