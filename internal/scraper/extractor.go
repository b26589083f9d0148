package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors se prueban en orden; el primer match no vacío gana.
var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	".post-content",
	".article-content",
	".entry-content",
	".article-body",
	".post-body",
	".main-content",
	"#content",
	".content",
}

// boilerplateSelector cubre elementos de navegación, scripts y publicidad.
const boilerplateSelector = "script, style, noscript, iframe, nav, header, footer, aside, form, " +
	".ad, .ads, .advertisement, .sidebar, .cookie-banner, .popup"

// Extractor convierte HTML crudo en el texto principal de la página, acotado.
// Es una transformación pura: mismo markup, mismo resultado.
type Extractor struct {
	maxChars int
}

func NewExtractor(maxChars int) *Extractor {
	if maxChars <= 0 {
		maxChars = 8000
	}
	return &Extractor{maxChars: maxChars}
}

// Extract devuelve el texto principal y el título de la página.
func (e *Extractor) Extract(markup string) (content, title string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", "", err
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(boilerplateSelector).Remove()

	var text string
	for _, sel := range contentSelectors {
		candidate := collapseWhitespace(doc.Find(sel).First().Text())
		if candidate != "" {
			text = candidate
			break
		}
	}
	if text == "" {
		text = collapseWhitespace(doc.Find("body").Text())
	}

	return truncate(text, e.maxChars), title, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
