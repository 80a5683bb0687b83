package entity

import (
	"image"
	"path/filepath"
	"strings"
)

// ImageSource канал, из которого пришло изображение
type ImageSource string

const (
	SourceCamera ImageSource = "camera" // снимок с камеры
	SourceUpload ImageSource = "upload" // загруженный файл
)

// ParseImageSource разбирает название канала.
func ParseImageSource(s string) (ImageSource, bool) {
	switch ImageSource(strings.ToLower(strings.TrimSpace(s))) {
	case SourceCamera:
		return SourceCamera, true
	case SourceUpload:
		return SourceUpload, true
	}
	return "", false
}

// InputKind вариант входа
type InputKind int

const (
	NoInput InputKind = iota
	CameraInput
	UploadInput
)

// AllowedUploadExtensions расширения, которые принимает канал загрузки.
var AllowedUploadExtensions = []string{"jpg", "jpeg", "png"}

// ImageInput размеченное объединение {CameraInput | UploadInput | NoInput}.
type ImageInput struct {
	Kind     InputKind
	Data     []byte
	Filename string // только для UploadInput
}

// NoImage вход без изображения
func NoImage() ImageInput {
	return ImageInput{Kind: NoInput}
}

// CameraImage снимок с камеры; пустые байты дают NoInput.
func CameraImage(data []byte) ImageInput {
	if len(data) == 0 {
		return NoImage()
	}
	return ImageInput{Kind: CameraInput, Data: data}
}

// UploadImage загруженный файл; пустые байты дают NoInput.
func UploadImage(filename string, data []byte) ImageInput {
	if len(data) == 0 {
		return NoImage()
	}
	return ImageInput{Kind: UploadInput, Data: data, Filename: filename}
}

// Source возвращает канал входа; для NoInput пустая строка.
func (in ImageInput) Source() ImageSource {
	switch in.Kind {
	case CameraInput:
		return SourceCamera
	case UploadInput:
		return SourceUpload
	}
	return ""
}

// IsAllowedUpload проверяет расширение имени файла без учёта регистра.
func IsAllowedUpload(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, allowed := range AllowedUploadExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// DecodedImage декодированный буфер пикселей. Неизменяем после создания.
type DecodedImage struct {
	Pixels    image.Image
	Width     int
	Height    int
	Channels  int
	Source    ImageSource
	Format    string // jpeg | png
	Thumbnail []byte // JPEG-миниатюра для истории
}
