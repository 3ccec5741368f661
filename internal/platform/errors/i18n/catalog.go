// Package i18n renders player-facing messages for error codes.
package i18n

import (
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// Code mirrors errors.Code; the errors package imports this one.
type Code = string

// BaseLocale is the catalog used when no better match exists.
const BaseLocale = "en-US"

// Catalog holds the message templates of one locale, parsed once.
type Catalog struct {
	locale    string
	raw       map[Code]string
	templates map[Code]*template.Template
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Catalog{
		"en-US": NewCatalog("en-US", enUSMessages),
		"pt-BR": NewCatalog("pt-BR", ptBRMessages),
	}
)

// NewCatalog parses messages for locale. A message that fails to parse is
// rendered verbatim.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	c := &Catalog{
		locale:    locale,
		raw:       make(map[Code]string, len(messages)),
		templates: make(map[Code]*template.Template, len(messages)),
	}
	for code, text := range messages {
		c.raw[code] = text
		if tmpl, err := template.New(code).Parse(text); err == nil {
			c.templates[code] = tmpl
		}
	}
	return c
}

// RegisterCatalog makes cat available under locale, replacing any previous one.
func RegisterCatalog(locale string, cat *Catalog) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[locale] = cat
}

// GetCatalog returns the catalog best matching locale, or the en-US one.
func GetCatalog(locale string) *Catalog {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = BaseLocale
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	if c, ok := registry[locale]; ok {
		return c
	}
	return registry[bestMatch(locale)]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message of code with metadata as template data. Unknown
// codes render as the code itself.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.raw[code]
	if !ok {
		return code
	}
	tmpl, ok := c.templates[code]
	if !ok {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return text
	}
	return b.String()
}

// bestMatch runs the BCP 47 matcher over the registered locales. Callers
// hold registryMu.
func bestMatch(requested string) string {
	tag, err := language.Parse(requested)
	if err != nil {
		return BaseLocale
	}
	names := []string{BaseLocale}
	tags := []language.Tag{language.MustParse(BaseLocale)}
	for name := range registry {
		if name == BaseLocale {
			continue
		}
		if parsed, err := language.Parse(name); err == nil {
			names = append(names, name)
			tags = append(tags, parsed)
		}
	}
	_, index, confidence := language.NewMatcher(tags).Match(tag)
	if confidence == language.No {
		return BaseLocale
	}
	return names[index]
}
