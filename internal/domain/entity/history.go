package entity

import (
	"sync"
	"time"
)

// HistoryEntry запись об успешном распознавании. Не изменяется после добавления.
type HistoryEntry struct {
	Image      *DecodedImage
	Detections DetectionSet
	RecordedAt time.Time
}

// History журнал распознаваний сессии: только добавление, без вытеснения.
type History struct {
	mu      sync.RWMutex
	entries []HistoryEntry
}

// Append записывает ровно то, что передали. Пустые множества отсекает вызывающий.
func (h *History) Append(image *DecodedImage, detections DetectionSet) HistoryEntry {
	entry := HistoryEntry{
		Image:      image,
		Detections: detections,
		RecordedAt: time.Now(),
	}

	h.mu.Lock()
	h.entries = append(h.entries, entry)
	h.mu.Unlock()

	return entry
}

// List возвращает копию записей в порядке добавления
func (h *History) List() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len возвращает число записей
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// At возвращает запись по номеру, начиная с 1 (как в интерфейсе).
func (h *History) At(number int) (HistoryEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if number < 1 || number > len(h.entries) {
		return HistoryEntry{}, false
	}
	return h.entries[number-1], true
}
