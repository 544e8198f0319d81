package i18n

import (
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

func TestInitAndAvailable(t *testing.T) {
	Init("en")
	if Lang() != "en" || Tag() != language.English {
		t.Fatalf("expected en, got %q / %v", Lang(), Tag())
	}
	av := Available()
	for _, want := range []string{"de", "en"} {
		if !slices.Contains(av, want) {
			t.Fatalf("expected locale %q in %v", want, av)
		}
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	if got := T("notify.copied"); got != "Password copied to clipboard!" {
		t.Fatalf("unexpected translation %q", got)
	}
	if got := T("list.count", 1, 2); got != "1 of 2 networks shown" {
		t.Fatalf("unexpected formatted translation %q", got)
	}

	Init("de")
	defer Init("en")
	if got := T("notify.copy_failed"); got != "Passwort konnte nicht kopiert werden" {
		t.Fatalf("unexpected German translation %q", got)
	}
	if Tag() != language.German {
		t.Fatalf("expected German tag, got %v", Tag())
	}
}

func TestT_MissingIDFallsBack(t *testing.T) {
	Init("en")
	if got := T("does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected ID fallback, got %q", got)
	}
}

func TestInit_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	Init("not a tag!")
	defer Init("en")
	if Lang() != "en" {
		t.Fatalf("expected fallback to en, got %q", Lang())
	}
	if got := T("stats.total"); got != "Total Networks" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestLoadBundle_ReportsMalformedLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("greeting: \"Hello\"\n")},
		"locales/xx.yaml": {Data: []byte("greeting: [unclosed\n")},
	}
	b, err := loadBundle(fsys)
	if err == nil || !strings.Contains(err.Error(), "xx.yaml") {
		t.Fatalf("expected parse error naming xx.yaml, got %v", err)
	}
	got, err := i18n.NewLocalizer(b, "en").Localize(&i18n.LocalizeConfig{MessageID: "greeting"})
	if err != nil || got != "Hello" {
		t.Fatalf("expected the valid locale to stay loaded, got %q / %v", got, err)
	}
}

func TestLoadBundle_EmbeddedLocalesParse(t *testing.T) {
	if _, err := loadBundle(localeFS); err != nil {
		t.Fatalf("embedded locales should parse: %v", err)
	}
}
