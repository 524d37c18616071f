package msgtrans

import "testing"

func TestLegalMethods_DiamondAndMarker(t *testing.T) {
	// given: A embeds B and C, both embed D; A also embeds a marker
	d := testBundle("/x", "D", "Base==base")
	b := testBundle("/x", "B", "Left==left")
	c := testBundle("/x", "C", "Right==right")
	a := testBundle("/x", "A", "Own==own")
	b.Extends = []*MessageInterface{d}
	c.Extends = []*MessageInterface{d}
	a.Extends = []*MessageInterface{b, c, BasicLoggerMarker}

	// when
	methods := a.LegalMethods()

	// then
	var names []string
	for _, m := range methods {
		names = append(names, m.Name)
	}
	want := []string{"Own", "Left", "Base", "Right"}
	if len(names) != len(want) {
		t.Fatalf("methods = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("methods = %v, want %v", names, want)
			break
		}
	}
	if !a.HasMarker() {
		t.Error("A should report the embedded marker")
	}
	if b.HasMarker() {
		t.Error("B embeds no marker")
	}
}

func TestTranslationKeyMap_MergeDoesNotMutate(t *testing.T) {
	iface := testBundle("/x", "M", "A==a", "B==b")
	ma, mb := iface.Methods[0], iface.Methods[1]
	base := TranslationKeyMap{ma: "one", mb: "two"}
	over := TranslationKeyMap{mb: "deux"}

	merged := base.Merge(over)

	if merged[mb] != "deux" || merged[ma] != "one" {
		t.Errorf("merged = %v", merged.ByKey())
	}
	if base[mb] != "two" {
		t.Errorf("base mutated: %v", base.ByKey())
	}
	if len(over) != 1 {
		t.Errorf("overlay mutated: %v", over.ByKey())
	}
}

func TestTranslationKeyMap_MethodsSortedByID(t *testing.T) {
	iface := testBundle("/x", "M", "Zed==z", "Alpha==a")
	m := TranslationKeyMap{iface.Methods[0]: "z", iface.Methods[1]: "a"}

	got := m.Methods()

	if got[0].Name != "Alpha" || got[1].Name != "Zed" {
		t.Errorf("order = %s, %s", got[0].ID(), got[1].ID())
	}
}

func TestPrimaryClass_CarriesDefaults(t *testing.T) {
	iface := testBundle("/x", "Messages", "Greet=greet=Hello", "Bye==Goodbye")

	c := PrimaryClass(iface)

	if c.TypeName != "MessagesBundle" || !c.Primary || c.SuperTypeName != "" {
		t.Errorf("primary = %+v", c)
	}
	got := c.Translations.ByKey()
	if got["greet"] != "Hello" || got["Bye"] != "Goodbye" {
		t.Errorf("defaults = %v", got)
	}
}

func TestTypeNameFor(t *testing.T) {
	iface := testBundle("/x", "Messages")
	iface.Kind = KindLogger

	if got := iface.TypeNameFor(Locale{}); got != "MessagesLogger" {
		t.Errorf("root = %s", got)
	}
	if got := iface.TypeNameFor(Locale{Language: "en", Country: "US", Variant: "POSIX"}); got != "MessagesLogger_en_US_POSIX" {
		t.Errorf("en_US_POSIX = %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"", LevelInfo, true},
		{"DEBUG", LevelDebug, true},
		{" warning ", LevelWarn, true},
		{"error", LevelError, true},
		{"fatal", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMethodID(t *testing.T) {
	iface := testBundle("/x", "Messages", "Greet==Hello")
	if got := iface.Methods[0].ID(); got != "Messages.Greet" {
		t.Errorf("ID = %s", got)
	}
	orphan := &Method{Name: "Loose"}
	if got := orphan.ID(); got != "Loose" {
		t.Errorf("ID without interface = %s", got)
	}
}
