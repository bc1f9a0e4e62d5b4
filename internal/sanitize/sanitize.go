package sanitize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/godeals/internal/domain"
	"github.com/jonesrussell/godeals/internal/logger"
)

// Sanitizer cleans candidate records into catalog-entry shape. Records that
// cannot be recovered are rejected rather than passed through half-cleaned.
type Sanitizer struct {
	registry *Registry
	logger   logger.Interface
}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer(registry *Registry, log logger.Interface) *Sanitizer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Sanitizer{
		registry: registry,
		logger:   log,
	}
}

var (
	// promoPrefixRe matches leading promotional boilerplate on titles.
	promoPrefixRe = regexp.MustCompile(`(?i)^\s*(sale|clearance|extra\s+\d+%\s*off)[\s:!\-]+`)

	// whitespaceRe collapses runs of whitespace, including leaked newlines
	// and tabs from scraped markup.
	whitespaceRe = regexp.MustCompile(`\s+`)

	// priceRe extracts the first currency-like token from a string.
	priceRe = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)
)

// widgetJunkPrefixes are substrings that mark the start of leaked widget
// script or template text; everything from the prefix onward is dropped.
var widgetJunkPrefixes = []string{
	"//<![CDATA[",
	"<!--",
	"window.dataLayer",
	"window.__",
	"document.write",
	"function(",
	"var productWidget",
}

// junkMarkers flag a cleaned title that still looks like markup or script.
var junkMarkers = []string{"{", "}", "</", "<div", "<span", ";", "=>"}

// Clean sanitizes a candidate record. The boolean reports whether the
// record is usable; unrecoverable records return (nil, false).
func (s *Sanitizer) Clean(rec *domain.CandidateRecord) (*domain.CatalogEntry, bool) {
	if rec == nil {
		return nil, false
	}

	title := CleanText(rec.Title)
	title = promoPrefixRe.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)

	if title == "" || looksLikeJunk(title) {
		return nil, false
	}

	brand := CleanText(rec.Brand)
	if brand == "" {
		brand = domain.UnknownBrand
	}

	salePrice, _ := ParsePrice(rec.SalePrice.String())
	price, _ := ParsePrice(rec.Price.String())

	entry := &domain.CatalogEntry{
		Title:     title,
		Brand:     brand,
		Model:     CleanText(rec.Model),
		SalePrice: salePrice,
		Price:     price,
		Store:     strings.TrimSpace(rec.Store),
		URL:       s.ResolveURL(rec.Store, rec.URL),
		Image:     s.ResolveURL(rec.Store, rec.Image),
		Gender:    CleanText(rec.Gender),
		ShoeType:  CleanText(rec.ShoeType),
	}

	return entry, true
}

// CleanText removes leaked style rules, widget junk, and markup from a free
// text field and collapses whitespace.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = stripWidgetJunk(text)
	text = stripStyleRules(text)
	text = stripMarkup(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// stripWidgetJunk drops everything from a known widget-junk prefix onward.
func stripWidgetJunk(text string) string {
	cut := len(text)
	for _, prefix := range widgetJunkPrefixes {
		if idx := strings.Index(text, prefix); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return text[:cut]
}

// stripStyleRules removes brace-balanced substrings that look like CSS
// rules (they contain a colon or semicolon), together with the selector
// text immediately preceding the opening brace. Braced text that is not a
// style rule is left alone.
func stripStyleRules(text string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		open := strings.IndexByte(text[i:], '{')
		if open < 0 {
			b.WriteString(text[i:])
			break
		}
		open += i

		end, balanced := matchBrace(text, open)
		if !balanced {
			// Unbalanced brace: if the tail looks like a style rule,
			// drop it; otherwise keep the text as-is.
			if strings.ContainsAny(text[open:], ":;") {
				b.WriteString(strings.TrimRight(trimSelector(text[i:open]), " "))
				break
			}
			b.WriteString(text[i:])
			break
		}

		inner := text[open+1 : end]
		if strings.ContainsAny(inner, ":;") {
			b.WriteString(trimSelector(text[i:open]))
			i = end + 1
			continue
		}

		// Balanced but not a style rule ("{Limited}"); keep it.
		b.WriteString(text[i : end+1])
		i = end + 1
	}
	return b.String()
}

// matchBrace returns the index of the brace matching the one at open.
func matchBrace(text string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// trimSelector removes a trailing CSS-selector-like token run ahead of a
// style rule ("... .price-widget " -> "... ").
func trimSelector(text string) string {
	end := len(text)
	for end > 0 && text[end-1] == ' ' {
		end--
	}
	start := end
	for start > 0 {
		c := text[start-1]
		if c == '.' || c == '#' || c == '-' || c == '_' || c == ',' || c == ':' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			start--
			continue
		}
		break
	}
	// Only treat the token as a selector when it carries selector syntax;
	// a plain word before a brace is part of the title.
	token := text[start:end]
	if strings.ContainsAny(token, ".#") || token == "" {
		return text[:start]
	}
	return text[:end]
}

// stripMarkup removes HTML tags, keeping their text content.
func stripMarkup(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	return doc.Text()
}

// looksLikeJunk reports whether a cleaned title still resembles markup or
// script rather than a product name.
func looksLikeJunk(title string) bool {
	for _, marker := range junkMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// ParsePrice coerces a currency-like string ("$129.99", "129,99 USD") to a
// number. The boolean reports whether a numeric value was found.
func ParsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	match := priceRe.FindString(raw)
	if match == "" {
		return 0, false
	}

	match = strings.ReplaceAll(match, ",", "")
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ResolveURL resolves a possibly relative or protocol-relative listing URL
// against the store's registered base URL.
func (s *Sanitizer) ResolveURL(store, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if parsed.IsAbs() {
		return raw
	}

	base, err := url.Parse(s.registry.BaseFor(store))
	if err != nil {
		return raw
	}
	return base.ResolveReference(parsed).String()
}
