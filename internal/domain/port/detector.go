package port

import (
	"context"

	"plant-bot/internal/domain/entity"
)

// Detector интерфейс детектора растений
type Detector interface {
	// Detect выполняет один проход модели и возвращает все сырые срабатывания
	Detect(ctx context.Context, img *entity.DecodedImage) ([]entity.RawDetection, error)
}

// ImageDecoder приводит вход любого канала к DecodedImage
type ImageDecoder interface {
	// Decode возвращает entity.ErrNoImage для NoInput и ошибку класса DecodeError для битых байтов
	Decode(input entity.ImageInput) (*entity.DecodedImage, error)
}
