//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
)

// YOLODetector запускает YOLO-модель в формате ONNX через OpenCV DNN.
type YOLODetector struct {
	cfg    DetectorConfig
	labels *LabelTable
	net    gocv.Net
	mu     sync.Mutex // gocv.Net не потокобезопасен
}

// NewYOLODetector загружает веса и таблицу меток; ошибка означает невозможность запуска.
func NewYOLODetector(cfg DetectorConfig) (*YOLODetector, error) {
	labels, err := prepareModel(&cfg)
	if err != nil {
		return nil, err
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, errors.Errorf("failed to load model weights %s", cfg.ModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &YOLODetector{cfg: cfg, labels: labels, net: net}, nil
}

// Detect выполняет один проход модели; пороги только те, что входят в шаг предсказания модели.
func (d *YOLODetector) Detect(ctx context.Context, img *entity.DecodedImage) ([]entity.RawDetection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil || img.Pixels == nil {
		return nil, errors.New("empty image")
	}

	mat, err := gocv.ImageToMatRGB(img.Pixels)
	if err != nil {
		return nil, errors.Wrap(err, "image to mat")
	}
	defer mat.Close()

	lb := newLetterbox(mat.Cols(), mat.Rows(), d.cfg.InputSize)
	input := d.letterbox(mat, lb)
	defer input.Close()

	size := image.Pt(d.cfg.InputSize, d.cfg.InputSize)
	blob := gocv.BlobFromImage(input, 1.0/255.0, size, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	d.mu.Unlock()
	defer output.Close()

	values, err := output.DataPtrFloat32()
	if err != nil {
		return nil, errors.Wrap(err, "read model output")
	}
	data := make([]float32, len(values))
	copy(data, values)

	return postprocess(data, output.Size(), d.labels, lb, d.cfg)
}

// letterbox масштабирует с сохранением пропорций и дополняет серым до квадрата.
func (d *YOLODetector) letterbox(mat gocv.Mat, lb letterbox) gocv.Mat {
	newW := int(float64(mat.Cols())*lb.scale + 0.5)
	newH := int(float64(mat.Rows())*lb.scale + 0.5)

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationLinear)

	right := d.cfg.InputSize - newW - lb.padX
	bottom := d.cfg.InputSize - newH - lb.padY
	padded := gocv.NewMat()
	gray := color.RGBA{R: 114, G: 114, B: 114, A: 0}
	gocv.CopyMakeBorder(resized, &padded, lb.padY, bottom, lb.padX, right, gocv.BorderConstant, gray)
	return padded
}

// Close освобождает сеть
func (d *YOLODetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}

var _ port.Detector = (*YOLODetector)(nil)
