package vision

import (
	"os"

	"github.com/pkg/errors"
)

// prepareModel проверяет файлы модели до загрузки; ошибка здесь фатальна для запуска.
func prepareModel(cfg *DetectorConfig) (*LabelTable, error) {
	defaults := DefaultDetectorConfig()
	if cfg.InputSize <= 0 {
		cfg.InputSize = defaults.InputSize
	}
	if cfg.MaxDetections <= 0 {
		cfg.MaxDetections = defaults.MaxDetections
	}

	info, err := os.Stat(cfg.ModelPath)
	if err != nil {
		return nil, errors.Wrapf(err, "model weights %s", cfg.ModelPath)
	}
	if info.IsDir() || info.Size() == 0 {
		return nil, errors.Errorf("model weights %s: not a weights file", cfg.ModelPath)
	}

	labels, err := LoadLabels(cfg.LabelsPath)
	if err != nil {
		return nil, err
	}
	return labels, nil
}
