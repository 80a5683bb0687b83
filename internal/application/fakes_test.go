package app

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
	"plant-bot/internal/infrastructure/knowledge"
	"plant-bot/internal/infrastructure/storage"
	"plant-bot/internal/infrastructure/vision"
)

type fakeDetector struct {
	raw   []entity.RawDetection
	err   error
	calls int
}

func (f *fakeDetector) Detect(ctx context.Context, img *entity.DecodedImage) ([]entity.RawDetection, error) {
	f.calls++
	return f.raw, f.err
}

// blockingDetector сообщает о входе в Detect и ждёт разрешения на выход.
type blockingDetector struct {
	raw     []entity.RawDetection
	started chan struct{}
	release chan struct{}
}

func newBlockingDetector(raw []entity.RawDetection) *blockingDetector {
	return &blockingDetector{
		raw:     raw,
		started: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
}

func (d *blockingDetector) Detect(ctx context.Context, img *entity.DecodedImage) ([]entity.RawDetection, error) {
	d.started <- struct{}{}
	<-d.release
	return d.raw, nil
}

type fixture struct {
	repo     *storage.MemorySessionRepository
	sessions *SessionService
	detector *fakeDetector
	svc      *RecognitionService
}

func newFixture(t *testing.T, policy entity.DedupPolicy) *fixture {
	t.Helper()
	detector := &fakeDetector{}
	f := newFixtureWith(t, policy, detector)
	f.detector = detector
	return f
}

func newFixtureWith(t *testing.T, policy entity.DedupPolicy, detector port.Detector) *fixture {
	t.Helper()
	kb, err := knowledge.NewDefault()
	require.NoError(t, err)

	repo := storage.NewMemorySessionRepository(time.Hour, entity.LocaleZhTW)
	sessions := NewSessionService(repo)

	return &fixture{
		repo:     repo,
		sessions: sessions,
		svc:      NewRecognitionService(sessions, vision.NewDecoder(32, 0), detector, kb, policy, nil),
	}
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16))))
	return buf.Bytes()
}
