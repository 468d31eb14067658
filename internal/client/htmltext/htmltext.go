// Package htmltext renders notice HTML as plain terminal text.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dl": true, "dt": true, "dd": true, "fieldset": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "tr": true, "ul": true,
}

var skipElements = map[string]bool{
	"script": true, "style": true, "head": true, "template": true, "noscript": true,
}

const bullet = "• "

// ToText converts an HTML fragment to text. Block elements start new lines,
// list items are bulleted and runs of whitespace collapse to one space
// outside <pre>. Input that fails to parse is returned unchanged.
func ToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return StripControl(html)
	}

	w := &writer{}
	w.walk(doc.Find("body"), false)
	return StripControl(w.String())
}

// StripControl drops C0 and C1 control characters other than newline and
// tab, so server text cannot carry terminal escape sequences.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, s)
}

type writer struct {
	b strings.Builder
}

func (w *writer) walk(s *goquery.Selection, pre bool) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		name := goquery.NodeName(c)
		switch {
		case name == "#text":
			w.text(c.Text(), pre)
		case skipElements[name]:
		case name == "br":
			w.b.WriteString("\n")
		case name == "li":
			w.newline()
			w.b.WriteString(bullet)
			w.walk(c, pre)
			w.newline()
		case name == "td" || name == "th":
			w.space()
			w.walk(c, pre)
		case blockElements[name]:
			w.newline()
			w.walk(c, pre || name == "pre")
			w.newline()
		default:
			w.walk(c, pre)
		}
	})
}

func (w *writer) text(t string, pre bool) {
	if pre {
		w.b.WriteString(t)
		return
	}
	fields := strings.Fields(t)
	if len(fields) == 0 {
		if t != "" {
			w.space()
		}
		return
	}
	if t[0] == ' ' || t[0] == '\n' || t[0] == '\t' || t[0] == '\r' {
		w.space()
	}
	w.b.WriteString(strings.Join(fields, " "))
	last := t[len(t)-1]
	if last == ' ' || last == '\n' || last == '\t' || last == '\r' {
		w.b.WriteString(" ")
	}
}

func (w *writer) last() byte {
	s := w.b.String()
	if s == "" {
		return '\n'
	}
	return s[len(s)-1]
}

func (w *writer) space() {
	if l := w.last(); l != ' ' && l != '\n' {
		w.b.WriteString(" ")
	}
}

func (w *writer) newline() {
	if w.last() != '\n' {
		w.b.WriteString("\n")
	}
}

// String trims trailing spaces on every line and collapses blank-line runs.
func (w *writer) String() string {
	lines := strings.Split(w.b.String(), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
			out = append(out, l)
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}
