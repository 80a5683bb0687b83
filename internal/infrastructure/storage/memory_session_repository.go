package storage

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
)

// MemorySessionRepository in-memory хранилище сессий; истёкшая сессия уничтожается вместе с историей.
type MemorySessionRepository struct {
	cache         *cache.Cache
	ttl           time.Duration
	defaultLocale entity.Locale
}

// NewMemorySessionRepository создаёт хранилище с временем жизни сессии ttl
func NewMemorySessionRepository(ttl time.Duration, defaultLocale entity.Locale) *MemorySessionRepository {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := ttl / 2
	if ttl == cache.NoExpiration || cleanup < time.Minute {
		cleanup = time.Minute
	}

	return &MemorySessionRepository{
		cache:         cache.New(ttl, cleanup),
		ttl:           ttl,
		defaultLocale: defaultLocale,
	}
}

// Get возвращает сессию по ID, создаёт новую если не найдена.
// Каждое обращение продлевает срок жизни сессии.
func (r *MemorySessionRepository) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		// Replace не воскрешает сессию, удалённую между Get и продлением.
		if err := r.cache.Replace(sessionID, x, r.ttl); err == nil {
			return x.(*entity.Session), nil
		}
	}

	session := entity.NewSession(sessionID, r.defaultLocale)
	// Add не перезаписывает: при гонке побеждает первая созданная сессия.
	if err := r.cache.Add(sessionID, session, r.ttl); err != nil {
		if x, found := r.cache.Get(sessionID); found {
			return x.(*entity.Session), nil
		}
		return nil, err
	}

	return session, nil
}

// Save продлевает срок жизни живой сессии. Завершённая сессия не восстанавливается:
// в этом случае возвращается entity.ErrSessionNotFound.
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	x, found := r.cache.Get(session.ID)
	if !found || x.(*entity.Session) != session {
		return errors.Wrapf(entity.ErrSessionNotFound, "session %q", session.ID)
	}
	if err := r.cache.Replace(session.ID, session, r.ttl); err != nil {
		return errors.Wrapf(entity.ErrSessionNotFound, "session %q", session.ID)
	}
	return nil
}

// Delete завершает сессию вместе с историей
func (r *MemorySessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}

// Count возвращает число живых сессий
func (r *MemorySessionRepository) Count() int {
	return r.cache.ItemCount()
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)
