package app

import (
	"context"

	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
)

type SessionService struct {
	repo port.SessionRepository
}

func NewSessionService(repo port.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	return s.repo.Get(ctx, sessionID)
}

// SetLocale меняет только язык отображения; история и результаты не затрагиваются.
func (s *SessionService) SetLocale(ctx context.Context, sessionID string, locale entity.Locale) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.SetLocale(locale)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *SessionService) ToggleLocale(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.SetLocale(ctx, sessionID, session.Locale().Next())
}

func (s *SessionService) SetMode(ctx context.Context, sessionID string, mode entity.ImageSource) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.SetMode(mode)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// History возвращает записи в порядке добавления
func (s *SessionService) History(ctx context.Context, sessionID string) ([]entity.HistoryEntry, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.History.List(), nil
}

// End завершает сессию; история уничтожается вместе с ней.
func (s *SessionService) End(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}
