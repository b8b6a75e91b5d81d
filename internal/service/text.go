package service

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const excerptLength = 200

// textPolicy holds the sanitizers shared by the content services. Policies
// are safe for concurrent use once built.
type textPolicy struct {
	strict   *bluemonday.Policy
	ugc      *bluemonday.Policy
	markdown goldmark.Markdown
}

func newTextPolicy() *textPolicy {
	return &textPolicy{
		strict: bluemonday.StrictPolicy(),
		ugc:    bluemonday.UGCPolicy(),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// plain strips all markup from visitor-submitted text
func (p *textPolicy) plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(p.strict.Sanitize(s)))
}

// render converts Markdown (raw HTML allowed) into sanitized HTML
func (p *textPolicy) render(source string) (string, error) {
	var buf bytes.Buffer
	if err := p.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return string(p.ugc.SanitizeBytes(buf.Bytes())), nil
}

// excerpt is the first excerptLength characters of the rendered text
func (p *textPolicy) excerpt(renderedHTML string) string {
	text := strings.Join(strings.Fields(p.plain(renderedHTML)), " ")
	if utf8.RuneCountInString(text) <= excerptLength {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:excerptLength])
	if i := strings.LastIndex(cut, " "); i > excerptLength/2 {
		cut = cut[:i]
	}
	return cut + "…"
}
