package knowledge

import (
	_ "embed"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
)

//go:embed species.yaml
var defaultSpecies []byte

// KnowledgeBase статический справочник видов; после загрузки только чтение.
type KnowledgeBase struct {
	records map[string]entity.SpeciesRecord
	labels  []string
}

// NewDefault загружает встроенный справочник
func NewDefault() (*KnowledgeBase, error) {
	return Parse(defaultSpecies)
}

// Parse строит справочник из YAML вида `метка: {поля}`.
func Parse(data []byte) (*KnowledgeBase, error) {
	var raw map[string]entity.SpeciesRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse species table")
	}

	kb := &KnowledgeBase{
		records: make(map[string]entity.SpeciesRecord, len(raw)),
		labels:  make([]string, 0, len(raw)),
	}
	for label, record := range raw {
		if label == "" {
			return nil, errors.New("species table: empty label")
		}
		record.Label = label
		kb.records[label] = record
		kb.labels = append(kb.labels, label)
	}
	sort.Strings(kb.labels)

	return kb, nil
}

// Lookup ищет карточку по точному совпадению метки (с учётом регистра и подчёркиваний).
func (kb *KnowledgeBase) Lookup(label string) (entity.SpeciesRecord, bool) {
	record, ok := kb.records[label]
	return record, ok
}

// Labels возвращает все известные метки по алфавиту
func (kb *KnowledgeBase) Labels() []string {
	out := make([]string, len(kb.labels))
	copy(out, kb.labels)
	return out
}

var _ port.SpeciesCatalog = (*KnowledgeBase)(nil)
