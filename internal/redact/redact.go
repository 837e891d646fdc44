// Package redact removes sensitive details from error text before it is
// logged. Generator errors can carry host file paths of configured templates,
// fragments of uploaded slide XML and the people named in a deck; none of
// that belongs in shared logs.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedPathPlaceholder  = "[REDACTED_PATH]"
	RedactedXMLPlaceholder   = "[REDACTED_XML]"
	RedactedEmailPlaceholder = "[REDACTED_EMAIL]"
	RedactedStackPlaceholder = "[STACK_TRACE_REDACTED]"
	RedactedCredPlaceholder  = "[REDACTED_CREDENTIAL]"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules run in order. Stack traces go first because they contain paths.
var rules = []rule{
	{
		re:   regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		repl: RedactedStackPlaceholder,
	},
	{
		// Markup copied out of a template part, e.g. <a:t>Nguyễn Văn A</a:t>.
		re:   regexp.MustCompile(`<([A-Za-z][\w:.-]*)[^<>]*>[^<]*</([A-Za-z][\w:.-]*)>`),
		repl: RedactedXMLPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)(password|passwd|secret|token)([=:\s]+['"]?)[^'"&\s]{3,}`),
		repl: RedactedCredPlaceholder,
	},
	{
		re:   regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		repl: RedactedEmailPlaceholder,
	},
	{
		// Absolute paths only; package part names such as ppt/slides/slide1.xml
		// are relative and stay readable.
		re:   regexp.MustCompile(`(^|[\s:="'(])(/[\w.-]+){2,}`),
		repl: "${1}" + RedactedPathPlaceholder,
	},
	{
		re:   regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`),
		repl: RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.repl)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
