package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var embedded embed.FS

type Translations map[string]string

const DefaultLocale = "en"

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
)

// Load reads the locale catalogs bundled with the binary.
func Load() error {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return err
	}
	return LoadTranslations(sub)
}

// LoadTranslations expects one directory per locale, each holding a
// messages.yaml with a MESSAGES map.
func LoadTranslations(fsys fs.FS) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := path.Join(locale, "messages.yaml")

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			continue
		}

		var catalog struct {
			Messages Translations `yaml:"MESSAGES"`
		}
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		locales[locale] = catalog.Messages
	}

	return nil
}

func Translate(locale, key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != DefaultLocale {
		if trans, ok := locales[DefaultLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}

// Format translates key and substitutes {name} placeholders from vars.
func Format(locale, key string, vars map[string]string) string {
	text := Translate(locale, key)
	if len(vars) == 0 {
		return text
	}

	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func Locales() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]string, 0, len(locales))
	for l := range locales {
		out = append(out, l)
	}
	return out
}
