package port

import (
	"context"

	"plant-bot/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий
type SessionRepository interface {
	// Get возвращает сессию по ID, создаёт новую если не найдена
	Get(ctx context.Context, sessionID string) (*entity.Session, error)

	// Save продлевает срок жизни сессии; завершённая сессия даёт entity.ErrSessionNotFound
	Save(ctx context.Context, session *entity.Session) error

	// Delete завершает сессию вместе с историей
	Delete(ctx context.Context, sessionID string) error
}
