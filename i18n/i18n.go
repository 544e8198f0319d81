// Package i18n translates user-facing strings. Translations live in
// embedded YAML files, one per language, keyed by message ID.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"wifiview/logging"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      = "en"
	tag       = language.English
)

// Init loads the embedded translations and selects lang. Unknown languages
// fall back to English.
func Init(l string) {
	b, err := loadBundle(localeFS)
	if err != nil {
		logging.Warnf("i18n: %v", err)
	}

	t, err := language.Parse(l)
	if err != nil {
		t = language.English
		l = "en"
	}

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	localizer = i18n.NewLocalizer(b, l)
	lang = l
	tag = t
}

// loadBundle parses every locale file under locales/. Files that fail to
// parse are skipped and reported; the rest stay usable.
func loadBundle(fsys fs.FS) (*i18n.Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(fsys, "locales")
	if err != nil {
		return b, fmt.Errorf("read locales: %w", err)
	}
	var errs []error
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, "locales/"+f.Name())
		if err != nil {
			errs = append(errs, fmt.Errorf("read locale %s: %w", f.Name(), err))
			continue
		}
		if _, err := b.ParseMessageFileBytes(data, f.Name()); err != nil {
			errs = append(errs, fmt.Errorf("parse locale %s: %w", f.Name(), err))
		}
	}
	return b, errors.Join(errs...)
}

// Lang returns the active language code.
func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// Tag returns the active language as a BCP 47 tag, used for collation.
func Tag() language.Tag {
	mu.RLock()
	defer mu.RUnlock()
	return tag
}

// Available lists the languages that have a translation file.
func Available() []string {
	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		logging.Warnf("i18n: read locales: %v", err)
		return nil
	}
	var out []string
	for _, f := range files {
		if name, ok := strings.CutSuffix(f.Name(), ".yaml"); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// T translates messageID. With args, the translation is used as a fmt
// format string. A missing ID translates to itself.
func T(messageID string, args ...any) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		Init("en")
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}

	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		msg = messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
