// Package catalog loads the translated messages of the command-line tools and
// registers them with golang.org/x/text/message.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the locale every other catalog is checked against.
const BaseLocale = "en-US"

// ErrUnknownLocale indicates a locale with no catalog.
var ErrUnknownLocale = errors.New("unknown locale")

//go:embed locales/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// Bundle holds the messages of every locale.
type Bundle struct {
	locales map[string]map[string]string
}

// LoadEmbedded loads the catalogs embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads locales/<locale>.yaml files from catalogFS. Every locale
// must define exactly the keys of the base locale.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	slices.Sort(paths)

	bundle := &Bundle{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		locale, messages, err := parseCatalogFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); locale != want {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, want)
		}
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
		bundle.locales[locale] = messages
	}

	base, ok := bundle.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	for locale, messages := range bundle.locales {
		for key := range base {
			if _, ok := messages[key]; !ok {
				return nil, fmt.Errorf("locale %s is missing key %q", locale, key)
			}
		}
		for key := range messages {
			if _, ok := base[key]; !ok {
				return nil, fmt.Errorf("locale %s defines unknown key %q", locale, key)
			}
		}
	}
	return bundle, nil
}

// Register registers all catalog messages with x/text/message.
func (b *Bundle) Register() error {
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		for key, value := range b.locales[locale] {
			if err := message.SetString(tag, key, value); err != nil {
				return fmt.Errorf("register %s %q: %w", locale, key, err)
			}
		}
	}
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all available locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	slices.Sort(out)
	return out
}

// Message returns one message, falling back to the base locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if messages, ok := b.locales[strings.TrimSpace(locale)]; ok {
		if value, ok := messages[key]; ok {
			return value, true
		}
	}
	value, ok := b.locales[BaseLocale][key]
	return value, ok
}

// Printer returns a printer for locale. Keys passed to its Sprintf and
// Fprintf methods are looked up in the registered catalog.
func (b *Bundle) Printer(locale string) (*message.Printer, error) {
	locale = strings.TrimSpace(locale)
	if !b.HasLocale(locale) {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLocale, locale, strings.Join(b.Locales(), ", "))
	}
	return message.NewPrinter(language.MustParse(locale)), nil
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}

// parseCatalogFile reads the small YAML subset the catalogs use:
//
//	locale: "en-US"
//	messages:
//	  "key": "value"
func parseCatalogFile(data []byte) (string, map[string]string, error) {
	var (
		locale     string
		inMessages bool
	)
	messages := map[string]string{}

	for _, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "locale:"):
			value, err := strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "locale:")))
			if err != nil {
				return "", nil, fmt.Errorf("parse locale: %w", err)
			}
			locale = value
		case line == "messages:":
			inMessages = true
		case inMessages:
			key, value, err := parseMessageEntry(line)
			if err != nil {
				return "", nil, fmt.Errorf("parse message entry %q: %w", line, err)
			}
			if _, dup := messages[key]; dup {
				return "", nil, fmt.Errorf("duplicate key %q", key)
			}
			messages[key] = value
		default:
			return "", nil, fmt.Errorf("unexpected line %q", line)
		}
	}

	if locale == "" {
		return "", nil, fmt.Errorf("missing locale")
	}
	if len(messages) == 0 {
		return "", nil, fmt.Errorf("missing messages")
	}
	return locale, messages, nil
}

func parseMessageEntry(line string) (string, string, error) {
	keyToken, rest, err := splitQuotedToken(line)
	if err != nil {
		return "", "", err
	}
	key, err := strconv.Unquote(keyToken)
	if err != nil {
		return "", "", fmt.Errorf("unquote key: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("message key cannot be blank")
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(rest), ":")
	if !ok {
		return "", "", fmt.Errorf("missing ':' separator")
	}
	value, err := strconv.Unquote(strings.TrimSpace(rest))
	if err != nil {
		return "", "", fmt.Errorf("unquote value: %w", err)
	}
	return key, value, nil
}

func splitQuotedToken(line string) (string, string, error) {
	if !strings.HasPrefix(line, "\"") {
		return "", "", fmt.Errorf("expected quoted token")
	}
	escaped := false
	for i := 1; i < len(line); i++ {
		switch {
		case escaped:
			escaped = false
		case line[i] == '\\':
			escaped = true
		case line[i] == '"':
			return line[:i+1], line[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated quoted token")
}
