// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

const DefaultLanguage = "en"

//go:embed locales/*.json
var localeFS embed.FS

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var (
	instance *I18n
	initErr  error
	once     sync.Once
)

// Initialize loads the embedded catalogues. It is safe to call more than once;
// a failed load is reported on every call.
func Initialize(defaultLang string) error {
	return initialize(localeFS, "locales", defaultLang)
}

func initialize(fsys fs.FS, dir, defaultLang string) error {
	once.Do(func() {
		inst := New(defaultLang)
		if initErr = inst.LoadTranslations(fsys, dir); initErr != nil {
			return
		}
		instance = inst
	})
	return initErr
}

func New(defaultLang string) *I18n {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	return &I18n{
		translations: make(map[string]map[string]string),
		defaultLang:  defaultLang,
	}
}

func (i *I18n) LoadTranslations(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read locales directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		filePath := path.Join(dir, entry.Name())

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", filePath, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", filePath, err)
		}

		i.mu.Lock()
		i.translations[lang] = translations
		i.mu.Unlock()
	}

	return nil
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	// Try to get translation for requested language
	if translations, exists := i.translations[lang]; exists {
		if text, exists := translations[key]; exists {
			return format(text, args)
		}
	}

	// Fallback to default language
	if lang != i.defaultLang {
		if translations, exists := i.translations[i.defaultLang]; exists {
			if text, exists := translations[key]; exists {
				return format(text, args)
			}
		}
	}

	// Return key if no translation found
	return key
}

func (i *I18n) Languages() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	langs := make([]string, 0, len(i.translations))
	for lang := range i.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func format(text string, args []interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	if instance != nil {
		return instance.T(lang, key, args...)
	}
	return key
}

func GetSupportedLanguages() []string {
	if instance == nil {
		return []string{DefaultLanguage}
	}
	return instance.Languages()
}

// Catalogue names use underscores, BCP 47 tags use hyphens.
var supportedTags = []language.Tag{
	language.English,
	language.TraditionalChinese,
}

var matcher = language.NewMatcher(supportedTags)

// MatchLanguage maps an Accept-Language header (or a ?lang= value) onto one of
// the shipped catalogues.
func MatchLanguage(accept string) string {
	if accept == "" {
		return DefaultLanguage
	}
	accept = strings.ReplaceAll(accept, "_", "-")
	tag, _ := language.MatchStrings(matcher, accept)
	base, _ := tag.Base()
	if base.String() != "zh" {
		return DefaultLanguage
	}
	// zh-CN and friends fall back to English; only Traditional Chinese ships.
	if script, _ := tag.Script(); script.String() == "Hant" {
		return "zh_TW"
	}
	return DefaultLanguage
}
