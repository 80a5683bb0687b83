package container

import (
	"go.uber.org/zap"

	app "plant-bot/internal/application"
	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
)

type Container struct {
	SessionService     *app.SessionService
	RecognitionService *app.RecognitionService
	Translator         port.Translator
}

type Deps struct {
	Sessions   port.SessionRepository
	Decoder    port.ImageDecoder
	Detector   port.Detector
	Catalog    port.SpeciesCatalog
	Translator port.Translator
	Policy     entity.DedupPolicy
	Logger     *zap.Logger
}

func New(d Deps) *Container {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	sessionService := app.NewSessionService(d.Sessions)
	recognitionService := app.NewRecognitionService(
		sessionService, d.Decoder, d.Detector, d.Catalog, d.Policy, d.Logger.Named("recognition"),
	)

	return &Container{
		SessionService:     sessionService,
		RecognitionService: recognitionService,
		Translator:         d.Translator,
	}
}
