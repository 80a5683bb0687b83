package port

import "plant-bot/internal/domain/entity"

// SpeciesCatalog справочник видов
type SpeciesCatalog interface {
	// Lookup ищет карточку по точному совпадению метки
	Lookup(label string) (entity.SpeciesRecord, bool)

	// Labels возвращает все известные метки
	Labels() []string
}
