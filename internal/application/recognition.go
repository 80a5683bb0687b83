package app

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
)

// Outcome итог одного запроса распознавания
type Outcome string

const (
	OutcomeNoInput     Outcome = "no_input"       // изображения ещё нет, показываем подсказку
	OutcomeRendered    Outcome = "rendered"       // есть срабатывания, запись добавлена в историю
	OutcomeEmpty       Outcome = "rendered_empty" // ничего не найдено
	OutcomeDecodeError Outcome = "decode_error"   // байты не декодируются
)

// RecognitionOutput результат запроса для отображения.
type RecognitionOutput struct {
	Outcome      Outcome
	Image        *entity.DecodedImage
	View         ResultView
	HistoryIndex int   // номер добавленной записи (с 1), 0 если записи нет
	Err          error // причина для OutcomeDecodeError
}

type RecognitionService struct {
	sessions *SessionService
	decoder  port.ImageDecoder
	detector port.Detector
	catalog  port.SpeciesCatalog
	policy   entity.DedupPolicy
	log      *zap.Logger
}

// NewRecognitionService создаёт сервис, который ведёт запрос от изображения до истории.
func NewRecognitionService(
	sessions *SessionService,
	decoder port.ImageDecoder,
	detector port.Detector,
	catalog port.SpeciesCatalog,
	policy entity.DedupPolicy,
	log *zap.Logger,
) *RecognitionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecognitionService{
		sessions: sessions,
		decoder:  decoder,
		detector: detector,
		catalog:  catalog,
		policy:   policy,
		log:      log,
	}
}

// Recognize проводит вход через декодер, детектор и справочник. Запись в историю
// добавляется только при наличии срабатываний. По завершении сессия снова в StateIdle.
func (s *RecognitionService) Recognize(ctx context.Context, sessionID string, input entity.ImageInput) (*RecognitionOutput, error) {
	return s.recognize(ctx, sessionID, func(*entity.Session) entity.ImageInput {
		return input
	})
}

// RecognizeFile как Recognize, но канал берётся из режима сессии уже под её блокировкой,
// поэтому переключение режима во время чужого запроса не меняет смысл этого файла.
func (s *RecognitionService) RecognizeFile(ctx context.Context, sessionID, filename string, data []byte) (*RecognitionOutput, error) {
	return s.recognize(ctx, sessionID, func(session *entity.Session) entity.ImageInput {
		if session.Mode() == entity.SourceUpload {
			return entity.UploadImage(filename, data)
		}
		return entity.CameraImage(data)
	})
}

func (s *RecognitionService) recognize(ctx context.Context, sessionID string, inputOf func(*entity.Session) entity.ImageInput) (*RecognitionOutput, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	end := session.Begin()
	defer end()
	defer session.SetState(entity.StateIdle)

	input := inputOf(session)

	started := time.Now()
	log := s.log.With(zap.String("session", sessionID))

	img, err := s.decoder.Decode(input)
	switch {
	case errors.Is(err, entity.ErrNoImage):
		return &RecognitionOutput{Outcome: OutcomeNoInput}, nil
	case entity.IsDecodeError(err):
		session.SetState(entity.StateDecodeError)
		log.Info("image rejected", zap.Error(err))
		return &RecognitionOutput{Outcome: OutcomeDecodeError, Err: err}, nil
	case err != nil:
		return nil, errors.Wrap(err, "decode image")
	}
	session.SetState(entity.StateImageReceived)

	session.SetState(entity.StateDetecting)
	raw, err := s.detector.Detect(ctx, img)
	if err != nil {
		log.Error("detection failed", zap.Error(err))
		return nil, errors.Wrap(err, "detect plants")
	}

	view := RenderResult(raw, s.catalog, s.policy)
	if view.Empty() {
		session.SetState(entity.StateRenderedEmpty)
		log.Info("nothing identified", zap.Duration("took", time.Since(started)))
		return &RecognitionOutput{Outcome: OutcomeEmpty, Image: img, View: view}, nil
	}

	session.History.Append(img, view.Detections)
	index := session.History.Len()
	if err := s.sessions.repo.Save(ctx, session); err != nil {
		if !errors.Is(err, entity.ErrSessionNotFound) {
			return nil, errors.Wrap(err, "save session")
		}
		// Сессию завершили во время распознавания: результат показываем, историю не храним.
		log.Info("session ended during recognition", zap.Strings("labels", view.Detections.Labels()))
		return &RecognitionOutput{Outcome: OutcomeRendered, Image: img, View: view}, nil
	}
	session.SetState(entity.StateRendered)

	log.Info("plants identified",
		zap.Int("raw", len(raw)),
		zap.Strings("labels", view.Detections.Labels()),
		zap.Int("history", index),
		zap.Duration("took", time.Since(started)),
	)

	return &RecognitionOutput{
		Outcome:      OutcomeRendered,
		Image:        img,
		View:         view,
		HistoryIndex: index,
	}, nil
}
