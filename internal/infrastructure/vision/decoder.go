package vision

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
)

const (
	thumbnailQuality = 85

	// DefaultMaxPixels предел площади изображения (40 Мп)
	DefaultMaxPixels = 40_000_000
)

// Decoder приводит вход с камеры или из файла к единому DecodedImage.
type Decoder struct {
	ThumbnailMaxSide int
	MaxPixels        int
}

// NewDecoder создаёт декодер; миниатюры не больше maxSide по длинной стороне,
// изображения больше maxPixels отклоняются до выделения буфера пикселей.
func NewDecoder(maxSide, maxPixels int) *Decoder {
	if maxSide <= 0 {
		maxSide = 320
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Decoder{ThumbnailMaxSide: maxSide, MaxPixels: maxPixels}
}

// Decode декодирует байты входа. NoInput даёт entity.ErrNoImage.
func (d *Decoder) Decode(input entity.ImageInput) (*entity.DecodedImage, error) {
	switch input.Kind {
	case entity.NoInput:
		return nil, entity.ErrNoImage
	case entity.UploadInput:
		if !entity.IsAllowedUpload(input.Filename) {
			return nil, errors.Wrapf(entity.ErrUnsupportedType, "file %q", input.Filename)
		}
	case entity.CameraInput:
	default:
		return nil, errors.Errorf("unknown input kind %d", input.Kind)
	}

	// Заголовок читается первым: размер буфера определяется им, а не длиной файла.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(input.Data))
	if err != nil {
		return nil, errors.Wrapf(entity.ErrDecode, "%s input: %v", input.Source(), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(d.MaxPixels) {
		return nil, errors.Wrapf(entity.ErrDecode, "%s input: %dx%d exceeds %d pixels",
			input.Source(), cfg.Width, cfg.Height, d.MaxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(input.Data))
	if err != nil {
		return nil, errors.Wrapf(entity.ErrDecode, "%s input: %v", input.Source(), err)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, errors.Wrapf(entity.ErrDecode, "%s input: empty image", input.Source())
	}

	thumb, err := d.thumbnail(img)
	if err != nil {
		return nil, errors.Wrap(err, "encode thumbnail")
	}

	return &entity.DecodedImage{
		Pixels:    img,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Channels:  channelsOf(img),
		Source:    input.Source(),
		Format:    format,
		Thumbnail: thumb,
	}, nil
}

// thumbnail уменьшает изображение (без увеличения) и кодирует в JPEG.
func (d *Decoder) thumbnail(img image.Image) ([]byte, error) {
	side := uint(d.ThumbnailMaxSide)
	small := resize.Thumbnail(side, side, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// channelsOf 1 для оттенков серого, 3 для цветных; альфа-канал детектору не передаётся.
func channelsOf(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	return 3
}

var _ port.ImageDecoder = (*Decoder)(nil)
