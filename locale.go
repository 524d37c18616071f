package msgtrans

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

const (
	// PropertiesExt is the extension of every translation file.
	PropertiesExt = ".properties"

	// GeneratedSuffix marks skeleton files written by WriteSkeleton. They match
	// the translation file pattern but are never translation sources.
	GeneratedSuffix = ".i18n_locale_COUNTRY_VARIANT" + PropertiesExt

	i18nMarker = ".i18n_"
)

// localeQualifier matches the part of a file name after the interface name.
var localeQualifier = regexp.MustCompile(`^\.i18n_([a-z]+)(?:_([A-Z0-9]+)(?:_([A-Za-z0-9]+))?)?\.properties$`)

// Locale is the (language, country, variant) qualifier of a translation file.
// The zero value is the root locale of the primary type.
type Locale struct {
	Language string
	Country  string
	Variant  string
}

// IsRoot reports whether l carries no qualifier at all.
func (l Locale) IsRoot() bool {
	return l.Language == ""
}

// Depth is the number of present qualifiers (0 for root, 3 with a variant).
func (l Locale) Depth() int {
	switch {
	case l.Language == "":
		return 0
	case l.Country == "":
		return 1
	case l.Variant == "":
		return 2
	default:
		return 3
	}
}

// Parent drops exactly the least-specific present qualifier.
func (l Locale) Parent() Locale {
	switch {
	case l.Variant != "":
		return Locale{Language: l.Language, Country: l.Country}
	case l.Country != "":
		return Locale{Language: l.Language}
	default:
		return Locale{}
	}
}

// String returns the underscore form used in file and type names, e.g. "en_US_POSIX".
func (l Locale) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Language, l.Country, l.Variant} {
		if p == "" {
			break
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "_")
}

// ClassSuffix is appended to the primary type name: "_en_US", or "" for root.
func (l Locale) ClassSuffix() string {
	if l.IsRoot() {
		return ""
	}
	return "_" + l.String()
}

// Tag converts the locale to a BCP 47 tag. A variant BCP 47 does not know,
// such as POSIX, becomes a private use subtag: en_US_POSIX is en-US-x-posix.
func (l Locale) Tag() (language.Tag, error) {
	if l.IsRoot() {
		return language.Und, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(l.String(), "_", "-"))
	if err == nil || l.Variant == "" {
		return tag, err
	}
	base := Locale{Language: l.Language, Country: l.Country}
	return language.Parse(strings.ReplaceAll(base.String(), "_", "-") + "-x-" + strings.ToLower(l.Variant))
}

// TranslationFileName is the parsed name of a translation file.
type TranslationFileName struct {
	Interface string
	Locale    Locale
}

// ParseTranslationFileName parses "<iface>.i18n_<lang>[_<COUNTRY>[_<VARIANT>]].properties".
func ParseTranslationFileName(iface, name string) (TranslationFileName, error) {
	if iface == "" || !strings.HasPrefix(name, iface) {
		return TranslationFileName{}, fmt.Errorf("translation file %q does not belong to %s", name, iface)
	}
	m := localeQualifier.FindStringSubmatch(name[len(iface):])
	if m == nil {
		return TranslationFileName{}, fmt.Errorf("translation file %q has no valid locale qualifier", name)
	}
	return TranslationFileName{
		Interface: iface,
		Locale:    Locale{Language: m[1], Country: m[2], Variant: m[3]},
	}, nil
}

// IsBase reports whether f is the non-localized name "<iface>.properties".
func (f TranslationFileName) IsBase() bool {
	return f.Locale.IsRoot()
}

// Enclosing returns the name of the next less specific translation file.
// The base name is its own enclosing name.
func (f TranslationFileName) Enclosing() TranslationFileName {
	return TranslationFileName{Interface: f.Interface, Locale: f.Locale.Parent()}
}

// String renders the file name.
func (f TranslationFileName) String() string {
	if f.IsBase() {
		return f.Interface + PropertiesExt
	}
	return f.Interface + i18nMarker + f.Locale.String() + PropertiesExt
}
