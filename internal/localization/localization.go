package localization

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed translations/*.yaml
var translationsFS embed.FS

// DefaultLanguage is used when the user's language has no translation.
const DefaultLanguage = "ru"

var languages = []string{"ru", "en"}

type Service struct {
	translations map[string]map[string]interface{}
}

func NewService() (*Service, error) {
	s := &Service{
		translations: make(map[string]map[string]interface{}),
	}

	for _, lang := range languages {
		data, err := translationsFS.ReadFile(fmt.Sprintf("translations/%s.yaml", lang))
		if err != nil {
			return nil, fmt.Errorf("read %s translations: %w", lang, err)
		}

		var translations map[string]interface{}
		if err := yaml.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("parse %s translations: %w", lang, err)
		}

		s.translations[lang] = translations
	}

	return s, nil
}

// Language maps a Telegram language_code ("en", "en-US", "") to a supported language.
func (s *Service) Language(code string) string {
	code = strings.ToLower(code)
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	if _, ok := s.translations[code]; ok {
		return code
	}
	return DefaultLanguage
}

// Get retrieves a translation by key for the given language
// Key format: "section.subsection.key" or "section.key"
// Params can contain placeholders like {{name}}, {{amount}}, etc.
// Missing keys fall back to the default language, then to the key itself.
func (s *Service) Get(lang, key string, params map[string]interface{}) string {
	if lang == "" {
		lang = DefaultLanguage
	}

	text, ok := s.lookup(lang, key)
	if !ok && lang != DefaultLanguage {
		text, ok = s.lookup(DefaultLanguage, key)
	}
	if !ok {
		return key
	}

	return s.replacePlaceholders(text, params)
}

func (s *Service) lookup(lang, key string) (string, bool) {
	langTranslations, ok := s.translations[lang]
	if !ok {
		return "", false
	}

	var current interface{} = langTranslations
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return "", false
		}
		current = m[part]
	}

	text, ok := current.(string)
	return text, ok
}

func (s *Service) replacePlaceholders(text string, params map[string]interface{}) string {
	if params == nil {
		return text
	}

	result := text
	for key, value := range params {
		placeholder := fmt.Sprintf("{{%s}}", key)
		result = strings.ReplaceAll(result, placeholder, fmt.Sprint(value))
	}

	return result
}
