package presentation

import (
	"bytes"
	"encoding/xml"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Placeholder tokens recognized in template slides.
const (
	TokenTitle            = "{{Title}}"
	TokenSubtitle         = "{{Subtitle}}"
	TokenOwner            = "{{Owner}}"
	TokenTopics           = "{{Topics}}"
	TokenHeading          = "{{Heading}}"
	TokenBullets          = "{{Bullets}}"
	TokenImageDescription = "{{ImageDescription}}"
)

var (
	paragraphRegex = regexp.MustCompile(`(?s)<a:p>.*?</a:p>|<a:p\s[^>]*>.*?</a:p>`)
	textRunRegex   = regexp.MustCompile(`(?s)(<a:t(?:\s[^>]*)?>)(.*?)(</a:t>)`)
	tokenRegex     = regexp.MustCompile(`\{\{[A-Za-z]+\}\}`)
)

// Fill replaces placeholder tokens in slide XML. Each key of values is a full
// token such as "{{Title}}". A value spanning several lines splits the
// paragraph at the token: text before the token stays with the first line,
// text after it moves to the last line, and every line gets the paragraph and
// run properties of the token. Tokens without a value are left in place.
func Fill(slide []byte, values map[string]string) []byte {
	if len(values) == 0 {
		return slide
	}
	out := joinSplitTokens(slide)
	for _, token := range slices.Sorted(maps.Keys(values)) {
		out = fillToken(out, token, values[token])
	}
	return out
}

func fillToken(doc []byte, token, value string) []byte {
	lines := strings.Split(value, "\n")
	for i := range lines {
		lines[i] = escapeText(lines[i])
	}

	tok := []byte(token)
	cursor := 0
	for {
		rel := bytes.Index(doc[cursor:], tok)
		if rel < 0 {
			return doc
		}
		at := cursor + rel

		start, end := enclosingParagraph(doc, at)
		if start < 0 {
			repl := []byte(strings.Join(lines, " "))
			doc = splice(doc, at, at+len(tok), repl)
			cursor = at + len(repl)
			continue
		}

		head, tail := splitParagraph(doc[start:end], at-start, len(tok), lines)
		doc = splice(doc, start, end, append(head, tail...))
		cursor = start + len(head)
	}
}

// splitParagraph replaces the token at offset at of para with lines. head ends
// right after the last inserted line and tail is the rest of the paragraph,
// so a caller can resume scanning at len(head).
func splitParagraph(para []byte, at, n int, lines []string) (head, tail []byte) {
	tail = para[at+n:]
	head = append(head, para[:at]...)
	head = append(head, lines[0]...)
	if len(lines) == 1 {
		return head, tail
	}

	runStart, textStart, runEnd, ok := tokenRun(para, at)
	if !ok {
		// No plain run around the token: repeat the whole paragraph per line.
		tok := para[at : at+n]
		var block []byte
		for _, line := range lines {
			block = append(block, bytes.ReplaceAll(para, tok, []byte(line))...)
		}
		return block, nil
	}

	textEnd := at + bytes.Index(para[at:], []byte("</a:t>"))
	opening := paragraphOpening(para)
	run := para[runStart:textStart]

	head = append(head, para[textEnd:runEnd]...)
	head = append(head, "</a:p>"...)
	for i, line := range lines[1:] {
		head = append(head, opening...)
		head = append(head, run...)
		head = append(head, line...)
		if i < len(lines)-2 {
			head = append(head, para[textEnd:runEnd]...)
			head = append(head, "</a:p>"...)
		}
	}
	return head, tail
}

// tokenRun locates the <a:r> run whose text holds offset at. It returns the
// run start, the offset just after its <a:t> tag and the run end.
func tokenRun(para []byte, at int) (runStart, textStart, runEnd int, ok bool) {
	runStart = max(bytes.LastIndex(para[:at], []byte("<a:r>")), bytes.LastIndex(para[:at], []byte("<a:r ")))
	if runStart < 0 || bytes.Contains(para[runStart:at], []byte("</a:r>")) {
		return 0, 0, 0, false
	}
	tag := max(bytes.LastIndex(para[:at], []byte("<a:t>")), bytes.LastIndex(para[:at], []byte("<a:t ")))
	if tag < runStart || bytes.Contains(para[tag:at], []byte("</a:t>")) {
		return 0, 0, 0, false
	}
	textStart = tag + bytes.IndexByte(para[tag:], '>') + 1
	closeAt := bytes.Index(para[at:], []byte("</a:r>"))
	textClose := bytes.Index(para[at:], []byte("</a:t>"))
	if closeAt < 0 || textClose < 0 || textClose > closeAt {
		return 0, 0, 0, false
	}
	return runStart, textStart, at + closeAt + len("</a:r>"), true
}

// paragraphOpening returns the <a:p> start tag plus its <a:pPr> properties.
func paragraphOpening(para []byte) []byte {
	end := bytes.IndexByte(para, '>') + 1
	rest := para[end:]
	if !bytes.HasPrefix(rest, []byte("<a:pPr")) {
		return para[:end]
	}
	tagEnd := bytes.IndexByte(rest, '>')
	if tagEnd > 0 && rest[tagEnd-1] == '/' {
		return para[:end+tagEnd+1]
	}
	if closeAt := bytes.Index(rest, []byte("</a:pPr>")); closeAt >= 0 {
		return para[:end+closeAt+len("</a:pPr>")]
	}
	return para[:end]
}

// enclosingParagraph returns the bounds of the <a:p> element containing pos,
// or -1 when pos is not inside one.
func enclosingParagraph(doc []byte, pos int) (int, int) {
	start := max(bytes.LastIndex(doc[:pos], []byte("<a:p>")), bytes.LastIndex(doc[:pos], []byte("<a:p ")))
	if start < 0 {
		return -1, -1
	}
	closeAt := bytes.Index(doc[pos:], []byte("</a:p>"))
	if closeAt < 0 {
		return -1, -1
	}
	// A closing tag between start and pos means pos is outside that paragraph.
	if bytes.Contains(doc[start:pos], []byte("</a:p>")) {
		return -1, -1
	}
	return start, pos + closeAt + len("</a:p>")
}

func splice(doc []byte, from, to int, repl []byte) []byte {
	out := make([]byte, 0, len(doc)-(to-from)+len(repl))
	out = append(out, doc[:from]...)
	out = append(out, repl...)
	return append(out, doc[to:]...)
}

// joinSplitTokens moves the text of a paragraph into its first run when a
// token only appears once the runs are joined. PowerPoint splits "{{Title}}"
// across runs after spell checking or partial formatting.
func joinSplitTokens(doc []byte) []byte {
	if !bytes.Contains(doc, []byte("{{")) {
		return doc
	}
	return paragraphRegex.ReplaceAllFunc(doc, func(para []byte) []byte {
		runs := textRunRegex.FindAllSubmatch(para, -1)
		if len(runs) < 2 {
			return para
		}
		var joined []byte
		split := false
		for _, r := range runs {
			joined = append(joined, r[2]...)
		}
		for _, tok := range tokenRegex.FindAll(joined, -1) {
			found := false
			for _, r := range runs {
				if bytes.Contains(r[2], tok) {
					found = true
					break
				}
			}
			if !found {
				split = true
				break
			}
		}
		if !split {
			return para
		}

		first := true
		return textRunRegex.ReplaceAllFunc(para, func(run []byte) []byte {
			m := textRunRegex.FindSubmatch(run)
			if first {
				first = false
				return append(append(append([]byte{}, m[1]...), joined...), m[3]...)
			}
			return append(append([]byte{}, m[1]...), m[3]...)
		})
	})
}

func escapeText(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
