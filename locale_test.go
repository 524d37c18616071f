package msgtrans

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTranslationFileName(t *testing.T) {
	tests := []struct {
		name string
		file string
		want Locale
		ok   bool
	}{
		{"language", "Messages.i18n_fr.properties", Locale{Language: "fr"}, true},
		{"country", "Messages.i18n_en_US.properties", Locale{Language: "en", Country: "US"}, true},
		{"variant", "Messages.i18n_en_US_POSIX.properties", Locale{Language: "en", Country: "US", Variant: "POSIX"}, true},
		{"numeric region", "Messages.i18n_es_419.properties", Locale{Language: "es", Country: "419"}, true},
		{"mixed-case variant", "Messages.i18n_de_DE_formal.properties", Locale{Language: "de", Country: "DE", Variant: "formal"}, true},
		{"base name", "Messages.properties", Locale{}, false},
		{"uppercase language", "Messages.i18n_FR.properties", Locale{}, false},
		{"lowercase country", "Messages.i18n_en_us.properties", Locale{}, false},
		{"other interface", "Other.i18n_fr.properties", Locale{}, false},
		{"longer interface name", "MessagesExtra.i18n_fr.properties", Locale{}, false},
		{"wrong extension", "Messages.i18n_fr.txt", Locale{}, false},
		{"empty qualifier", "Messages.i18n_.properties", Locale{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// when
			got, err := ParseTranslationFileName("Messages", tt.file)

			// then
			if tt.ok != (err == nil) {
				t.Fatalf("ParseTranslationFileName(%q) err = %v, want ok=%v", tt.file, err, tt.ok)
			}
			if tt.ok && got.Locale != tt.want {
				t.Errorf("Locale = %+v, want %+v", got.Locale, tt.want)
			}
		})
	}
}

func TestTranslationFileName_EnclosingReachesBase(t *testing.T) {
	// given
	fn, err := ParseTranslationFileName("Messages", "Messages.i18n_en_US_POSIX.properties")
	if err != nil {
		t.Fatal(err)
	}

	// when
	var chain []string
	for cur := fn; !cur.IsBase(); cur = cur.Enclosing() {
		chain = append(chain, cur.Enclosing().String())
		if len(chain) > 3 {
			t.Fatalf("chain did not reach base in 3 steps: %v", chain)
		}
	}

	// then
	want := []string{"Messages.i18n_en_US.properties", "Messages.i18n_en.properties", "Messages.properties"}
	if len(chain) != len(want) {
		t.Fatalf("chain = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Errorf("chain[%d] = %q, want %q", i, chain[i], want[i])
		}
	}
	if fn.Enclosing().Interface != "Messages" {
		t.Errorf("Enclosing left the interface namespace: %q", fn.Enclosing().Interface)
	}
}

func TestTranslationFileName_BaseIsItsOwnEnclosing(t *testing.T) {
	// given
	base := TranslationFileName{Interface: "Messages"}

	// then
	if base.Enclosing() != base {
		t.Errorf("Enclosing() = %+v, want base", base.Enclosing())
	}
	if base.String() != "Messages.properties" {
		t.Errorf("String() = %q", base.String())
	}
}

func TestLocale_StringAndSuffix(t *testing.T) {
	tests := []struct {
		locale Locale
		str    string
		suffix string
		depth  int
	}{
		{Locale{}, "", "", 0},
		{Locale{Language: "en"}, "en", "_en", 1},
		{Locale{Language: "en", Country: "US"}, "en_US", "_en_US", 2},
		{Locale{Language: "en", Country: "US", Variant: "POSIX"}, "en_US_POSIX", "_en_US_POSIX", 3},
	}
	for _, tt := range tests {
		if got := tt.locale.String(); got != tt.str {
			t.Errorf("%+v.String() = %q, want %q", tt.locale, got, tt.str)
		}
		if got := tt.locale.ClassSuffix(); got != tt.suffix {
			t.Errorf("%+v.ClassSuffix() = %q, want %q", tt.locale, got, tt.suffix)
		}
		if got := tt.locale.Depth(); got != tt.depth {
			t.Errorf("%+v.Depth() = %d, want %d", tt.locale, got, tt.depth)
		}
	}
}

func TestLocale_Tag(t *testing.T) {
	// given
	root := Locale{}
	frCA := Locale{Language: "fr", Country: "CA"}

	// when
	rootTag, err1 := root.Tag()
	frTag, err2 := frCA.Tag()

	// then
	if err1 != nil || rootTag != language.Und {
		t.Errorf("root tag = %v, %v; want und", rootTag, err1)
	}
	if err2 != nil || frTag != language.MustParse("fr-CA") {
		t.Errorf("fr_CA tag = %v, %v; want fr-CA", frTag, err2)
	}
}

func TestLocale_TagUnknownVariantIsPrivateUse(t *testing.T) {
	tests := []struct {
		name    string
		locale  Locale
		want    string
		wantErr bool
	}{
		{"registered variant", Locale{Language: "ca", Country: "ES", Variant: "VALENCIA"}, "ca-ES-valencia", false},
		{"unknown variant", Locale{Language: "en", Country: "US", Variant: "POSIX"}, "en-US-x-posix", false},
		{"too long for private use", Locale{Language: "en", Country: "US", Variant: "TOOLONGVARIANT"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.locale.Tag()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Tag() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Tag() error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Tag() = %s, want %s", got, tt.want)
			}
		})
	}
}
