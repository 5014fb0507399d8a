package processor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/holiy930561/LenDon"
	"golang.org/x/net/html"
)

// markupPattern matches an opening, closing or self-closing tag.
var markupPattern = regexp.MustCompile(`(?i)<(/?[a-z][a-z0-9]*)(\s[^<>]*)?/?>`)

var spaceRun = regexp.MustCompile(`[ \t\r\n\f\v\x{00a0}\x{3000}]+`)

// HTMLProcessor turns HTML pasted from marketplace pages into plain
// source text. Plain text passes through trimmed.
type HTMLProcessor struct {
	ignoredTags map[string]bool
	dedupe      bool
}

// NewHTMLProcessor creates a new HTML processor with default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		ignoredTags: IgnoredTags,
		dedupe:      true,
	}
}

// NewHTMLProcessorWithIgnoredTags creates a new HTML processor with custom ignored tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		ignoredTags: ignored,
		dedupe:      true,
	}
}

// KeepDuplicates disables removal of repeated lines.
func (p *HTMLProcessor) KeepDuplicates() *HTMLProcessor {
	p.dedupe = false
	return p
}

// LooksLikeHTML reports whether content contains tag markup.
func LooksLikeHTML(content string) bool {
	return markupPattern.MatchString(content)
}

// Process extracts visible text blocks, one per line.
func (p *HTMLProcessor) Process(content string) (string, error) {
	if !LooksLikeHTML(content) {
		return strings.TrimSpace(content), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", &lendon.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	var (
		lines   []string
		current strings.Builder
		seen    = make(map[string]bool)
	)

	flush := func() {
		line := strings.TrimSpace(spaceRun.ReplaceAllString(current.String(), " "))
		current.Reset()
		if line == "" {
			return
		}
		if p.dedupe {
			hash := lendon.HashText(line)
			if seen[hash] {
				return
			}
			seen[hash] = true
		}
		lines = append(lines, line)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			tag := strings.ToLower(n.Data)
			if p.ignoredTags[tag] || isHidden(n) {
				return
			}
			if tag == "img" {
				if alt := attr(n, "alt"); strings.TrimSpace(alt) != "" {
					flush()
					current.WriteString(alt)
					flush()
				}
				return
			}
			if blockTags[tag] {
				flush()
				defer flush()
			}
		case html.TextNode:
			current.WriteString(n.Data)
		case html.CommentNode:
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Selection.Nodes {
		walk(n)
	}
	flush()

	return strings.Join(lines, "\n"), nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "aria-hidden":
			if a.Val == "true" {
				return true
			}
		case "style":
			style := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

// Verify HTMLProcessor implements SourceProcessor
var _ SourceProcessor = (*HTMLProcessor)(nil)
