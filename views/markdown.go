package views

import (
	"bytes"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldAlt    = regexp.MustCompile(`__(.+?)__`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicAlt  = regexp.MustCompile(`_([^_]+)_`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
	reOrdered    = regexp.MustCompile(`^\d+\.\s`)
)

// renderMarkdown writes the description markup of a project as HTML.
// Descriptions use a small markdown dialect: headings, paragraphs,
// unordered and ordered lists, blockquotes, fenced code with an optional
// language badge, links (suffix ^ opens a new tab), bold, italic, and
// inline code. Raw HTML in the input is always escaped; images come from
// the dokum upload, never from the description.
func renderMarkdown(buf *bytes.Buffer, md string) {
	r := &descRenderer{out: buf}
	for _, raw := range strings.Split(md, "\n") {
		r.line(strings.TrimRight(raw, "\r"))
	}
	r.closeBlocks()
	r.closeCode()
}

// descRenderer tracks which block element is currently open while the
// description is walked line by line.
type descRenderer struct {
	out       *bytes.Buffer
	inPara    bool
	inList    bool
	inOrdered bool
	inQuote   bool
	inCode    bool
	codeLang  bool
}

func (r *descRenderer) line(line string) {
	if strings.HasPrefix(line, "```") {
		if r.inCode {
			r.closeCode()
		} else {
			r.closeBlocks()
			r.openCode(strings.TrimSpace(line[3:]))
		}
		return
	}
	if r.inCode {
		r.out.WriteString(html.EscapeString(line))
		r.out.WriteString("\n")
		return
	}
	if strings.TrimSpace(line) == "" {
		r.closeBlocks()
		return
	}

	switch {
	case strings.HasPrefix(line, "---"):
		r.closeBlocks()
		r.out.WriteString("<hr/>")
	case strings.HasPrefix(line, "# "):
		r.heading(1, line[2:])
	case strings.HasPrefix(line, "## "):
		r.heading(2, line[3:])
	case strings.HasPrefix(line, "### "):
		r.heading(3, line[4:])
	case strings.HasPrefix(line, "- "):
		if !r.inList {
			r.closeBlocks()
			r.out.WriteString("<ul>")
			r.inList = true
		}
		r.item(line[2:])
	case reOrdered.MatchString(line):
		if !r.inOrdered {
			r.closeBlocks()
			r.out.WriteString("<ol>")
			r.inOrdered = true
		}
		r.item(reOrdered.ReplaceAllString(line, ""))
	case strings.HasPrefix(line, "> "):
		if !r.inQuote {
			r.closeBlocks()
			r.out.WriteString("<blockquote>")
			r.inQuote = true
		}
		r.out.WriteString(formatInline(strings.TrimSpace(line[2:])))
	default:
		if !r.inPara {
			r.closeBlocks()
			r.out.WriteString("<p>")
			r.inPara = true
		} else {
			r.out.WriteString(" ")
		}
		r.out.WriteString(formatInline(strings.TrimSpace(line)) + "\n")
	}
}

func (r *descRenderer) heading(level int, text string) {
	r.closeBlocks()
	tag := "h" + strconv.Itoa(level)
	r.out.WriteString("<" + tag + ">")
	r.out.WriteString(formatInline(strings.TrimSpace(text)))
	r.out.WriteString("</" + tag + ">")
}

func (r *descRenderer) item(text string) {
	r.out.WriteString("<li>")
	r.out.WriteString(formatInline(strings.TrimSpace(text)))
	r.out.WriteString("</li>")
}

func (r *descRenderer) openCode(lang string) {
	if lang != "" {
		l := html.EscapeString(lang)
		r.out.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + l + `">` + l + `</span>`)
		r.out.WriteString(`<pre class="code-block"><code class="language-` + l + `">`)
		r.codeLang = true
	} else {
		r.out.WriteString(`<pre class="code-block"><code>`)
	}
	r.inCode = true
}

func (r *descRenderer) closeCode() {
	if !r.inCode {
		return
	}
	r.out.WriteString("</code></pre>")
	if r.codeLang {
		r.out.WriteString("</div>")
		r.codeLang = false
	}
	r.inCode = false
}

func (r *descRenderer) closeBlocks() {
	if r.inPara {
		r.out.WriteString("</p>")
		r.inPara = false
	}
	if r.inList {
		r.out.WriteString("</ul>")
		r.inList = false
	}
	if r.inOrdered {
		r.out.WriteString("</ol>")
		r.inOrdered = false
	}
	if r.inQuote {
		r.out.WriteString("</blockquote>")
		r.inQuote = false
	}
}

// formatInline applies the inline rules (links, inline code, bold, italic)
// to one line of already block-classified text.
func formatInline(s string) string {
	out := html.EscapeString(s)
	out = reLink.ReplaceAllStringFunc(out, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		if len(match) < 3 {
			return m
		}
		href := safeURL(match[2])
		if href == "" {
			return match[1]
		}
		attrs := `class="underline decoration-2 underline-offset-4"`
		if match[3] == "^" {
			attrs += ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `" ` + attrs + `>` + match[1] + `</a>`
	})
	// Inline code is lifted out before the emphasis rules run, so backtick
	// content is never reformatted.
	var code []string
	out = reInlineCode.ReplaceAllStringFunc(out, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		code = append(code, "<code>"+match[1]+"</code>")
		return "\x00c" + strconv.Itoa(len(code)-1) + "\x00"
	})
	// Emphasis only outside HTML tags, so underscores in a href are left
	// alone.
	out = applyOutsideTags(out, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldAlt.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		seg = reItalicAlt.ReplaceAllString(seg, "<em>$1</em>")
		return seg
	})
	for i, c := range code {
		out = strings.Replace(out, "\x00c"+strconv.Itoa(i)+"\x00", c, 1)
	}
	return out
}

// applyOutsideTags applies fn only to the text segments outside HTML tags.
func applyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// safeURL admits relative paths, fragments, and http/https/mailto/tel
// URLs; everything else (javascript:, data:, ...) is dropped.
func safeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
