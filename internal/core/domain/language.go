package domain

import "strings"

// Language is one of the fixed, closed set of content languages.
type Language string

const (
	LanguageVietnamese Language = "vi"
	LanguageEnglish    Language = "en"
	LanguageLao        Language = "lo"
)

// DefaultCanonicalLanguage is the language entity text is authored in unless configured otherwise.
const DefaultCanonicalLanguage = LanguageEnglish

// SupportedLanguages lists every language a TranslatableBlob may carry.
var SupportedLanguages = []Language{LanguageEnglish, LanguageVietnamese, LanguageLao}

// currencyLanguageProxy is the legacy mapping of currency codes used as language hints.
var currencyLanguageProxy = map[string]Language{
	"USD": LanguageEnglish,
	"LAK": LanguageLao,
	"VND": LanguageVietnamese,
}

// ParseLanguage accepts a supported language code in any case.
func ParseLanguage(code string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	for _, l := range SupportedLanguages {
		if l == lang {
			return l, true
		}
	}
	return "", false
}

// ResolveLanguage maps a caller-supplied code onto a supported language.
// It is total: language codes resolve to themselves, the legacy currency proxies
// (USD, LAK, VND) resolve through the proxy table, and anything else resolves to canonical.
//
// Compatibility shim for callers that still pass a currency code as a language hint.
// New call sites should pass a Language.
func ResolveLanguage(code string, canonical Language) Language {
	if lang, ok := ParseLanguage(code); ok {
		return lang
	}
	if lang, ok := currencyLanguageProxy[NormalizeCurrencyCode(code)]; ok {
		return lang
	}
	if _, ok := ParseLanguage(string(canonical)); ok {
		return canonical
	}
	return DefaultCanonicalLanguage
}
