package entity

import "github.com/pkg/errors"

var (
	// ErrNoImage пользователь ещё не передал изображение; это не сбой.
	ErrNoImage = errors.New("no image supplied")
	// ErrDecode байты не удалось декодировать как изображение.
	ErrDecode = errors.New("failed to decode image")
	// ErrUnsupportedType файл с неподдерживаемым расширением.
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrDetectorUnavailable детектор не собран или не загружен.
	ErrDetectorUnavailable = errors.New("detector is not available")
	// ErrSessionNotFound сессия завершена или не существует.
	ErrSessionNotFound = errors.New("session not found")
)

// IsDecodeError сообщает, относится ли ошибка к классу DecodeError.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecode) || errors.Is(err, ErrUnsupportedType)
}
