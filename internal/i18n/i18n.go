// Package i18n resolves user-facing strings from embedded locale catalogs
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the catalog every lookup falls back to
const DefaultLanguage = "en"

// Params holds placeholder values substituted into `{name}` markers
type Params map[string]any

// Translator resolves a message key for a language. Implementations never
// fail: a missing key falls back to the default language, then to the key
type Translator interface {
	T(lang, key string, params Params) string
}

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle contains all locale catalogs loaded from disk
type Bundle struct {
	defaultLang string
	langs       []string
	messages    map[string]map[string]string
	matcher     language.Matcher
}

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// LoadEmbedded loads the catalogs compiled into the binary
func LoadEmbedded() (*Bundle, error) {
	return LoadEmbeddedWithDefault(DefaultLanguage)
}

// LoadEmbeddedWithDefault loads the compiled-in catalogs with defaultLang as
// the fallback language
func LoadEmbeddedWithDefault(defaultLang string) (*Bundle, error) {
	return LoadFromFS(embeddedLocales, defaultLang)
}

// MustLoadEmbedded is LoadEmbedded for package initialisation and tests
func MustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return b
}

// LoadFromFS loads every locales/*.yaml file from fsys. The file name must
// match the locale declared inside it
func LoadFromFS(fsys fs.FS, defaultLang string) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	b := &Bundle{
		defaultLang: defaultLang,
		messages:    make(map[string]map[string]string, len(paths)),
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); locale != want {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, want)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: messages map is required", p)
		}
		if _, dup := b.messages[locale]; dup {
			return nil, fmt.Errorf("catalog %s: locale %q already defined", p, locale)
		}
		b.messages[locale] = file.Messages
		b.langs = append(b.langs, locale)
	}

	if _, ok := b.messages[defaultLang]; !ok {
		return nil, fmt.Errorf("default locale %s is not defined in catalogs", defaultLang)
	}

	// The matcher prefers its first tag when nothing matches, so the default
	// language goes first
	sort.SliceStable(b.langs, func(i, j int) bool {
		return b.langs[i] == defaultLang && b.langs[j] != defaultLang
	})
	tags := make([]language.Tag, 0, len(b.langs))
	for _, l := range b.langs {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", l, err)
		}
		tags = append(tags, tag)
	}
	b.matcher = language.NewMatcher(tags)

	return b, nil
}

// Default returns the fallback language
func (b *Bundle) Default() string {
	if b == nil {
		return DefaultLanguage
	}
	return b.defaultLang
}

// Languages returns the loaded languages, default first
func (b *Bundle) Languages() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.langs...)
}

// Has reports whether a catalog exists for lang exactly
func (b *Bundle) Has(lang string) bool {
	if b == nil {
		return false
	}
	_, ok := b.messages[strings.TrimSpace(lang)]
	return ok
}

// Match resolves a language tag or an Accept-Language list such as
// "zh-CN,zh;q=0.9" to a loaded language. Unsupported input returns the
// default language and false
func (b *Bundle) Match(lang string) (string, bool) {
	if b == nil {
		return DefaultLanguage, false
	}
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return b.defaultLang, false
	}
	if b.Has(lang) {
		return lang, true
	}
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return b.defaultLang, false
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.defaultLang, false
	}
	return b.langs[idx], true
}

// Message returns the raw message for lang with default-language fallback
func (b *Bundle) Message(lang, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	resolved, _ := b.Match(lang)
	if msg, ok := b.messages[resolved][key]; ok {
		return msg, true
	}
	if resolved != b.defaultLang {
		msg, ok := b.messages[b.defaultLang][key]
		return msg, ok
	}
	return "", false
}

// T implements Translator
func (b *Bundle) T(lang, key string, params Params) string {
	msg, ok := b.Message(lang, key)
	if !ok {
		return key
	}
	return Format(msg, params)
}

// Format substitutes `{name}` placeholders. Unknown placeholders are left
// untouched
func Format(msg string, params Params) string {
	if len(params) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names)*2)
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(params[name]))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
