//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"github.com/pkg/errors"

	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
)

// YOLODetector детектор-заглушка (без OpenCV).
type YOLODetector struct {
	cfg    DetectorConfig
	labels *LabelTable
}

// NewYOLODetector проверяет файлы модели так же, как полная сборка.
func NewYOLODetector(cfg DetectorConfig) (*YOLODetector, error) {
	labels, err := prepareModel(&cfg)
	if err != nil {
		return nil, err
	}
	return &YOLODetector{cfg: cfg, labels: labels}, nil
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Detect(ctx context.Context, img *entity.DecodedImage) ([]entity.RawDetection, error) {
	_ = ctx
	_ = img
	return nil, errors.Wrap(entity.ErrDetectorUnavailable, "gocv build tag is not enabled")
}

// Close ничего не делает
func (d *YOLODetector) Close() error {
	return nil
}

var _ port.Detector = (*YOLODetector)(nil)
