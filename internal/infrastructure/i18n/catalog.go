package i18n

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
)

// Ключи строк интерфейса.
const (
	KeyPageTitle        = "page_title"
	KeyIntro            = "intro"
	KeyLanguageLabel    = "language_label"
	KeyLanguageName     = "language_name"
	KeyLanguageSwitched = "language_switched"
	KeyOptionsHeader    = "options_header"
	KeySourceLabel      = "source_label"
	KeyTakePhotoLabel   = "take_photo_label"
	KeyUploadLabel      = "upload_label"
	KeyCameraHeader     = "camera_header"
	KeyCameraHint       = "camera_hint"
	KeyUploadHeader     = "upload_header"
	KeyUploadHint       = "upload_hint"
	KeyCapturedCaption  = "captured_caption"
	KeyUploadedCaption  = "uploaded_caption"
	KeyModeSwitched     = "mode_switched"
	KeyWrongChannel     = "wrong_channel"
	KeyProcessing       = "processing"
	KeyResultLabel      = "result_label"
	KeyScientificName   = "scientific_name"
	KeyNotIdentified    = "not_identified"
	KeyNoImagePrompt    = "no_image_prompt"
	KeyDecodeError      = "decode_error"
	KeyUnsupportedType  = "unsupported_type"
	KeyDetectionError   = "detection_error"
	KeyHistoryLabel     = "history_label"
	KeyHistoryEmpty     = "history_empty"
	KeyHistoryRecord    = "history_record"
	KeyHistoryCaption   = "history_caption"
	KeyEcoInfo          = "eco_info"
	KeyEcoDetails       = "eco_details"
	KeyFooter           = "footer"
	KeyHelp             = "help"
	KeySessionEnded     = "session_ended"
	KeyUnknownCommand   = "unknown_command"
	KeyFieldFormat      = "field_format"
)

// RequiredKeys ключи, которые обязана содержать каждая локаль.
var RequiredKeys = []string{
	KeyPageTitle, KeyIntro, KeyLanguageLabel, KeyLanguageName, KeyLanguageSwitched,
	KeyOptionsHeader, KeySourceLabel, KeyTakePhotoLabel, KeyUploadLabel,
	KeyCameraHeader, KeyCameraHint, KeyUploadHeader, KeyUploadHint,
	KeyCapturedCaption, KeyUploadedCaption, KeyModeSwitched, KeyWrongChannel,
	KeyProcessing, KeyResultLabel, KeyScientificName, KeyNotIdentified,
	KeyNoImagePrompt, KeyDecodeError, KeyUnsupportedType, KeyDetectionError,
	KeyHistoryLabel, KeyHistoryEmpty, KeyHistoryRecord, KeyHistoryCaption,
	KeyEcoInfo, KeyEcoDetails, KeyFooter, KeyHelp, KeySessionEnded, KeyUnknownCommand, KeyFieldFormat,
	string(entity.FieldCommonName), string(entity.FieldCategory),
	string(entity.FieldFlowerLanguage), string(entity.FieldGrowingSeason),
	string(entity.FieldDistribution), string(entity.FieldToxicity),
	string(entity.FieldEdibility), string(entity.FieldMedicinalValue),
	string(entity.FieldEcoNotes),
}

//go:embed locales.yaml
var defaultLocales []byte

// Catalog таблица строк (язык, ключ) -> текст; загружается один раз.
type Catalog struct {
	fallback entity.Locale
	tables   map[entity.Locale]map[string]string
}

// NewDefault загружает встроенные строки и проверяет их полноту
func NewDefault(fallback entity.Locale) (*Catalog, error) {
	c, err := Parse(defaultLocales, fallback)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse разбирает YAML вида `локаль: {ключ: текст}`; неизвестные локали отклоняются.
func Parse(data []byte, fallback entity.Locale) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse locale table")
	}

	c := &Catalog{
		fallback: fallback,
		tables:   make(map[entity.Locale]map[string]string, len(raw)),
	}
	for code, table := range raw {
		locale, ok := entity.ParseLocale(code)
		if !ok {
			return nil, errors.Errorf("locale table: unsupported locale %q", code)
		}
		c.tables[locale] = table
	}

	return c, nil
}

// Validate проверяет, что у каждой поддерживаемой локали есть все обязательные ключи.
func (c *Catalog) Validate() error {
	var problems []string
	for _, locale := range entity.SupportedLocales {
		table, ok := c.tables[locale]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: locale missing", locale))
			continue
		}
		var missing []string
		for _, key := range RequiredKeys {
			if strings.TrimSpace(table[key]) == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			problems = append(problems, fmt.Sprintf("%s: missing %s", locale, strings.Join(missing, ", ")))
		}
	}
	if len(problems) > 0 {
		return errors.Errorf("locale table invalid: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Text возвращает строку для языка; при отсутствии берёт язык по умолчанию, затем сам ключ.
func (c *Catalog) Text(locale entity.Locale, key string, args ...interface{}) string {
	text, ok := c.tables[locale][key]
	if !ok {
		text, ok = c.tables[c.fallback][key]
	}
	if !ok {
		text = key
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// Table возвращает копию всех строк языка (для веб-клиента).
func (c *Catalog) Table(locale entity.Locale) map[string]string {
	out := make(map[string]string, len(RequiredKeys))
	for key, text := range c.tables[c.fallback] {
		out[key] = text
	}
	for key, text := range c.tables[locale] {
		out[key] = text
	}
	return out
}

var _ port.Translator = (*Catalog)(nil)
