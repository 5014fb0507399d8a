// Package render builds the display surface for a session: the scenario
// tabs and the output panel, as HTML fragments or plain text.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/holiy930561/LenDon"
	"github.com/holiy930561/LenDon/locales"
	"github.com/yuin/goldmark"
)

// resultLang is the lang attribute of generated text.
var resultLang = strings.SplitN(lendon.ToHTMLLang(lendon.TargetLocale), "-", 2)[0]

// markdownScenarios render their result as Markdown.
var markdownScenarios = map[lendon.Scenario]bool{
	lendon.ScenarioProductDetail: true,
	lendon.ScenarioMarketing:     true,
}

// fragment parses a single root element and returns its selection.
func fragment(root string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(root))
	if err != nil {
		return nil, err
	}
	return doc.Find("body").Children().First(), nil
}

// appendElement appends markup to parent and returns the new last child.
func appendElement(parent *goquery.Selection, markup string) *goquery.Selection {
	parent.AppendHtml(markup)
	return parent.Children().Last()
}

func outerHTML(sel *goquery.Selection) (string, error) {
	out, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", &lendon.ProcessorError{Message: "failed to serialize HTML", Cause: err, ContentType: "html"}
	}
	return out, nil
}

// markdownToHTML converts Markdown with goldmark. Raw HTML in the input is
// not passed through.
func markdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CounterLabel renders the character badge in lang: "121 / 120" for
// limited scenarios, "58 chars" otherwise.
func CounterLabel(lang locales.Language, o lendon.ValidationOutcome) (string, error) {
	if o.HasLimit {
		return fmt.Sprintf("%d / %d", o.CharacterCount, o.Limit), nil
	}
	chars, err := locales.Lookup(lang, "output.chars")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s", o.CharacterCount, chars), nil
}
