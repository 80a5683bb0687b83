package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"plant-bot/internal/domain/entity"
)

func TestMemorySessionRepository_GetCreatesOnce(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour, entity.LocaleEN)
	ctx := context.Background()

	first, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, entity.LocaleEN, first.Locale())

	second, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, repo.Count())
}

func TestMemorySessionRepository_SessionsAreIsolated(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour, entity.LocaleZhTW)
	ctx := context.Background()

	a, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	b, err := repo.Get(ctx, "b")
	require.NoError(t, err)

	a.History.Append(&entity.DecodedImage{}, entity.DetectionSet{})
	require.Equal(t, 1, a.History.Len())
	require.Equal(t, 0, b.History.Len())
}

func TestMemorySessionRepository_DeleteDropsHistory(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour, entity.LocaleZhTW)
	ctx := context.Background()

	s, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	s.History.Append(&entity.DecodedImage{}, entity.DetectionSet{})

	require.NoError(t, repo.Delete(ctx, "a"))

	fresh, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.NotSame(t, s, fresh)
	require.Equal(t, 0, fresh.History.Len())
}

func TestMemorySessionRepository_ConcurrentGet(t *testing.T) {
	repo := NewMemorySessionRepository(0, entity.LocaleZhTW)
	ctx := context.Background()

	var wg sync.WaitGroup
	got := make([]*entity.Session, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := repo.Get(ctx, "shared")
			require.NoError(t, err)
			got[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		require.Same(t, got[0], s)
	}
}

func TestMemorySessionRepository_SaveDoesNotRestoreEndedSession(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour, entity.LocaleZhTW)
	ctx := context.Background()

	s, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "a"))

	s.History.Append(&entity.DecodedImage{}, entity.DetectionSet{})
	err = repo.Save(ctx, s)
	require.True(t, errors.Is(err, entity.ErrSessionNotFound))
	require.Equal(t, 0, repo.Count())

	// новая сессия с тем же ID не затирается старой
	fresh, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, errors.Is(repo.Save(ctx, s), entity.ErrSessionNotFound))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Same(t, fresh, got)
	require.Equal(t, 0, got.History.Len())
}

func TestMemorySessionRepository_GetExtendsLifetime(t *testing.T) {
	repo := NewMemorySessionRepository(200*time.Millisecond, entity.LocaleZhTW)
	ctx := context.Background()

	first, err := repo.Get(ctx, "a")
	require.NoError(t, err)

	// суммарно дольше ttl, но каждое чтение продлевает срок
	for i := 0; i < 3; i++ {
		time.Sleep(120 * time.Millisecond)
		got, err := repo.Get(ctx, "a")
		require.NoError(t, err)
		require.Same(t, first, got)
	}

	time.Sleep(300 * time.Millisecond)
	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.NotSame(t, first, got)
}
