package translate

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

var supported = []string{
	"en", "ar", "az", "ca", "zh-CN", "cs", "da", "nl", "eo", "fi", "fr", "de", "el", "he", "hi", "hu",
	"id", "ga", "it", "ja", "ko", "fa", "pl", "pt", "ru", "sk", "es", "sv", "tr", "uk", "vi",
}

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var languages = buildLanguages()

func buildLanguages() []Language {
	out := make([]Language, 0, len(supported))

	for _, code := range supported {
		out = append(out, Language{Code: code, Name: displayName(language.MustParse(code))})
	}

	return out
}

// displayName renders "English name (native name)", or just the English name
// when the native one is missing or the same.
func displayName(tag language.Tag) string {
	base, _ := tag.Base()

	english := display.English.Languages().Name(base)
	if english == "" {
		english = tag.String()
	}

	native := display.Self.Name(base)
	if native == "" || strings.EqualFold(native, english) {
		return english
	}

	return english + " (" + native + ")"
}

// Languages lists the codes the translator accepts.
func Languages() []Language {
	return languages
}

// Canonical resolves a user supplied code to one of the supported codes.
func Canonical(code string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", apperr.Invalid("unknown language %q", code)
	}

	for _, c := range supported {
		if strings.EqualFold(c, tag.String()) {
			return c, nil
		}
	}

	return "", apperr.Invalid("unsupported language %q", code)
}
