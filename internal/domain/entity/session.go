package entity

import (
	"sync"
	"time"
)

// RequestState состояние обработки запроса в сессии
type RequestState string

const (
	StateIdle          RequestState = "idle"           // Ожидание ввода
	StateImageReceived RequestState = "image_received" // Изображение получено
	StateDetecting     RequestState = "detecting"      // Работает детектор
	StateRendered      RequestState = "rendered"       // Показан результат
	StateRenderedEmpty RequestState = "rendered_empty" // Растений не найдено
	StateDecodeError   RequestState = "decode_error"   // Изображение не декодировано
)

// Locale язык интерфейса
type Locale string

const (
	LocaleZhTW Locale = "zh-TW"
	LocaleEN   Locale = "en"
)

// SupportedLocales перечень поддерживаемых языков; первый используется по умолчанию.
var SupportedLocales = []Locale{LocaleZhTW, LocaleEN}

// ParseLocale разбирает код языка.
func ParseLocale(s string) (Locale, bool) {
	for _, l := range SupportedLocales {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Next возвращает следующий язык по кругу (переключатель языка).
func (l Locale) Next() Locale {
	for i, candidate := range SupportedLocales {
		if candidate == l {
			return SupportedLocales[(i+1)%len(SupportedLocales)]
		}
	}
	return SupportedLocales[0]
}

// Session состояние одного пользователя: язык, режим ввода и история.
type Session struct {
	ID        string
	CreatedAt time.Time
	History   *History

	mu     sync.RWMutex
	locale Locale
	mode   ImageSource
	state  RequestState
	busy   sync.Mutex
}

// NewSession создаёт сессию с начальным состоянием
func NewSession(id string, locale Locale) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		History:   &History{},
		locale:    locale,
		mode:      SourceCamera,
		state:     StateIdle,
	}
}

// Locale текущий язык
func (s *Session) Locale() Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// SetLocale меняет только язык отображения
func (s *Session) SetLocale(locale Locale) {
	s.mu.Lock()
	s.locale = locale
	s.mu.Unlock()
}

// Mode активный канал ввода
func (s *Session) Mode() ImageSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode переключает канал ввода
func (s *Session) SetMode(mode ImageSource) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

// State текущее состояние запроса
func (s *Session) State() RequestState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState обновляет состояние запроса
func (s *Session) SetState(state RequestState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Begin захватывает сессию на время одного запроса; запросы сессии идут строго по очереди.
func (s *Session) Begin() (end func()) {
	s.busy.Lock()
	return s.busy.Unlock
}
