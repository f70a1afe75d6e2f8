package service

import (
	"regexp"
	"strings"
	"time"
)

// Duplicate-guard lookback windows and the message prefix length compared by
// the contact guard.
const (
	contactDuplicateWindow     = 24 * time.Hour
	testimonialDuplicateWindow = 30 * 24 * time.Hour
	duplicatePrefixLen         = 50
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
)

// sanitizeField strips script blocks, then any remaining HTML tags, then
// surrounding whitespace. Stored submissions are re-rendered by the front
// end, so markup never survives intake.
func sanitizeField(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// honeypotTripped reports whether the hidden form field carries a value.
// Genuine users never see the field, so any non-empty trimmed value is spam.
func honeypotTripped(value string) bool {
	return strings.TrimSpace(value) != ""
}

// messagePrefix returns the first duplicatePrefixLen characters of msg, used
// by the contact duplicate guard as an intentionally approximate similarity
// key. Shorter messages are compared whole.
func messagePrefix(msg string) string {
	r := []rune(msg)
	if len(r) > duplicatePrefixLen {
		return string(r[:duplicatePrefixLen])
	}
	return msg
}
