package vision

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LabelTable таблица "индекс класса -> имя" из data.yaml модели.
type LabelTable struct {
	names map[int]string
	count int
}

// LoadLabels читает файл меток модели
func LoadLabels(path string) (*LabelTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read label table %s", path)
	}
	return ParseLabels(data)
}

// ParseLabels разбирает `names:` в виде списка или словаря индекс -> имя.
func ParseLabels(data []byte) (*LabelTable, error) {
	var doc struct {
		Names yaml.Node `yaml:"names"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse label table")
	}

	names := make(map[int]string)
	switch doc.Names.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := doc.Names.Decode(&list); err != nil {
			return nil, errors.Wrap(err, "decode label list")
		}
		for i, name := range list {
			names[i] = name
		}
	case yaml.MappingNode:
		if err := doc.Names.Decode(&names); err != nil {
			return nil, errors.Wrap(err, "decode label map")
		}
	default:
		return nil, errors.New("label table: `names` is missing")
	}
	if len(names) == 0 {
		return nil, errors.New("label table: no labels")
	}

	count := 0
	for idx := range names {
		if idx < 0 {
			return nil, errors.Errorf("label table: negative index %d", idx)
		}
		if idx+1 > count {
			count = idx + 1
		}
	}

	return &LabelTable{names: names, count: count}, nil
}

// Name возвращает имя класса; неизвестный индекс даёт class_<n>.
func (t *LabelTable) Name(classID int) string {
	if name, ok := t.names[classID]; ok {
		return name
	}
	return fmt.Sprintf("class_%d", classID)
}

// Len число классов модели (максимальный индекс + 1)
func (t *LabelTable) Len() int {
	return t.count
}
