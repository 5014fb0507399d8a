// Package processor normalizes pasted source content before generation.
package processor

import "github.com/holiy930561/LenDon"

// SourceProcessor is an alias to the main package interface.
type SourceProcessor = lendon.SourceProcessor

// IgnoredTags are elements whose content is never visible source text.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
	"iframe":   true,
	"head":     true,
	"textarea": true,
	"button":   true,
	"select":   true,
}

// blockTags end the current line of extracted text.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true,
	"tr": true, "ul": true, "br": true,
}
