package fields

import "regexp"

// The item-code marker with an optional colon and optional line break before
// the code value; the code itself is the next contiguous non-whitespace run.
var partNumberPattern = regexp.MustCompile(`料品號\s*[:：]?\s*(\S+)`)

func extractPartNumber(text string) string {
	return matchGroup(partNumberPattern, text)
}
