package vision

import (
	"sort"

	"github.com/pkg/errors"

	"plant-bot/internal/domain/entity"
)

// DetectorConfig параметры модели. Пороги повторяют шаг предсказания самой модели.
type DetectorConfig struct {
	ModelPath     string
	LabelsPath    string
	InputSize     int
	Confidence    float32
	IoU           float32
	MaxDetections int
}

// DefaultDetectorConfig значения ultralytics по умолчанию
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		InputSize:     640,
		Confidence:    0.25,
		IoU:           0.7,
		MaxDetections: 300,
	}
}

// letterbox геометрия вписывания изображения в квадратный вход модели.
type letterbox struct {
	scale  float64
	padX   int
	padY   int
	width  int // размеры исходного изображения
	height int
}

func newLetterbox(width, height, size int) letterbox {
	scale := float64(size) / float64(width)
	if s := float64(size) / float64(height); s < scale {
		scale = s
	}
	newW := int(float64(width)*scale + 0.5)
	newH := int(float64(height)*scale + 0.5)
	return letterbox{
		scale:  scale,
		padX:   (size - newW) / 2,
		padY:   (size - newH) / 2,
		width:  width,
		height: height,
	}
}

// toOriginal переводит (cx, cy, w, h) во входе модели в рамку исходного изображения.
func (l letterbox) toOriginal(cx, cy, w, h float32) entity.BoundingBox {
	x1 := (float64(cx-w/2) - float64(l.padX)) / l.scale
	y1 := (float64(cy-h/2) - float64(l.padY)) / l.scale
	x2 := (float64(cx+w/2) - float64(l.padX)) / l.scale
	y2 := (float64(cy+h/2) - float64(l.padY)) / l.scale

	ix1 := clamp(int(x1), 0, l.width)
	iy1 := clamp(int(y1), 0, l.height)
	ix2 := clamp(int(x2), 0, l.width)
	iy2 := clamp(int(y2), 0, l.height)

	return entity.BoundingBox{X: ix1, Y: iy1, Width: ix2 - ix1, Height: iy2 - iy1}
}

// decodeYOLO разбирает выход вида [1, 4+nc, anchors] (строки подряд) в кандидатов.
func decodeYOLO(data []float32, numClasses, anchors int, lb letterbox, conf float32) ([]entity.RawDetection, error) {
	rows := 4 + numClasses
	if numClasses <= 0 || anchors <= 0 {
		return nil, errors.Errorf("yolo output: bad shape classes=%d anchors=%d", numClasses, anchors)
	}
	if len(data) < rows*anchors {
		return nil, errors.Errorf("yolo output: expected %d values, got %d", rows*anchors, len(data))
	}

	at := func(row, col int) float32 { return data[row*anchors+col] }

	var out []entity.RawDetection
	for i := 0; i < anchors; i++ {
		classID := 0
		best := at(4, i)
		for c := 1; c < numClasses; c++ {
			if s := at(4+c, i); s > best {
				best = s
				classID = c
			}
		}
		if best < conf {
			continue
		}
		out = append(out, entity.RawDetection{
			ClassID:    classID,
			Confidence: best,
			Box:        lb.toOriginal(at(0, i), at(1, i), at(2, i), at(3, i)),
		})
	}
	return out, nil
}

// nonMaxSuppression жадный NMS внутри класса; результат по убыванию уверенности.
func nonMaxSuppression(dets []entity.RawDetection, iouThreshold float32, maxDet int) []entity.RawDetection {
	if len(dets) == 0 {
		return nil
	}
	sorted := make([]entity.RawDetection, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	used := make([]bool, len(sorted))
	kept := make([]entity.RawDetection, 0, len(sorted))
	for i := range sorted {
		if used[i] {
			continue
		}
		kept = append(kept, sorted[i])
		if maxDet > 0 && len(kept) >= maxDet {
			break
		}
		for j := i + 1; j < len(sorted); j++ {
			if used[j] || sorted[j].ClassID != sorted[i].ClassID {
				continue
			}
			if iou(sorted[i].Box, sorted[j].Box) > iouThreshold {
				used[j] = true
			}
		}
	}
	return kept
}

func iou(a, b entity.BoundingBox) float32 {
	x1 := maxInt(a.X, b.X)
	y1 := maxInt(a.Y, b.Y)
	x2 := minInt(a.X+a.Width, b.X+b.Width)
	y2 := minInt(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	inter := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return float32(inter) / float32(union)
}

// postprocess выход модели -> срабатывания с именами классов.
func postprocess(data []float32, shape []int, labels *LabelTable, lb letterbox, cfg DetectorConfig) ([]entity.RawDetection, error) {
	if len(shape) != 3 {
		return nil, errors.Errorf("yolo output: unexpected shape %v", shape)
	}
	numClasses := shape[1] - 4

	candidates, err := decodeYOLO(data, numClasses, shape[2], lb, cfg.Confidence)
	if err != nil {
		return nil, err
	}
	dets := nonMaxSuppression(candidates, cfg.IoU, cfg.MaxDetections)
	for i := range dets {
		dets[i].Label = labels.Name(dets[i].ClassID)
	}
	return dets, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
