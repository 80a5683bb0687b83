package port

import "plant-bot/internal/domain/entity"

// Translator таблица строк интерфейса по (язык, ключ)
type Translator interface {
	Text(locale entity.Locale, key string, args ...interface{}) string
}
