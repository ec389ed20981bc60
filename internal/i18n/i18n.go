// Package i18n picks the language the site's captions are served in.
package i18n

import (
	"golang.org/x/text/language"
)

type Locale string

const (
	Portuguese Locale = "pt"
	English    Locale = "en"
	Spanish    Locale = "es"
)

// Fallback is used when nothing else matches and for missing translations.
const Fallback = Portuguese

var (
	supported = []Locale{Portuguese, English, Spanish}
	matcher   = language.NewMatcher([]language.Tag{
		language.Portuguese,
		language.English,
		language.Spanish,
	})
)

// Supported lists the locales with translated captions, fallback first.
func Supported() []Locale {
	return append([]Locale(nil), supported...)
}

// Parse validates an explicit locale such as a ?lang= query value.
func Parse(s string) (Locale, bool) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, l := range supported {
		if base.String() == string(l) {
			return l, true
		}
	}
	return "", false
}

// Negotiate returns explicit when it names a supported locale, otherwise the
// best match for an Accept-Language header, otherwise Fallback.
func Negotiate(acceptLanguage, explicit string) Locale {
	if l, ok := Parse(explicit); ok {
		return l
	}
	if acceptLanguage == "" {
		return Fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Fallback
	}
	return supported[idx]
}
