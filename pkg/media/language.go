package media

import (
	"strings"

	"golang.org/x/text/language"
)

// UnknownLanguage is the synthetic code for missing or unrecognized languages. It sorts after
// every real ISO 639-2 code.
const UnknownLanguage = "zzz"

// NormalizeLanguage maps a language qualifier such as "en", "eng" or "en.forced" to a three letter
// code. Each dot or dash separated part is tried in order.
func NormalizeLanguage(qualifier string) string {
	parts := strings.FieldsFunc(qualifier, func(r rune) bool { return r == '.' || r == '-' || r == '_' })
	for _, part := range parts {
		tag, err := language.Parse(strings.TrimSpace(part))
		if err != nil {
			continue
		}

		base, conf := tag.Base()
		if conf != language.Exact {
			continue
		}

		if code := base.ISO3(); code != "" && code != "und" {
			return code
		}
	}

	return UnknownLanguage
}
