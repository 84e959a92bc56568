// Package sanitize strips markup from user-entered text before it is stored.
// Repositories assume their inputs have already been through here.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag and attribute. Built once and then treated as
// read-only, which is what makes concurrent use safe. Do not call any of
// the policy's Allow/Add methods after this point.
var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	// "34B<b>bold</b>" becomes "34B bold " rather than "34Bbold".
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// Sanitize removes all HTML from s and nothing else.
func Sanitize(s string) string {
	return strict.Sanitize(s)
}

// Clean is what handlers and services should call on free-form input. It
// strips markup, unescapes entities back to plaintext, turns non-breaking
// spaces into ordinary ones, and collapses runs of spaces on each line.
// Newlines survive.
func Clean(s string) string {
	out := strict.Sanitize(s)
	out = strings.TrimSpace(out)
	out = html.UnescapeString(out)
	out = strings.ReplaceAll(out, " ", " ")

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
