package web

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	app "plant-bot/internal/application"
	"plant-bot/internal/domain/entity"
	"plant-bot/internal/infrastructure/i18n"
)

func (s *Server) GetStrings(ctx *fiber.Ctx) error {
	session, err := s.c.SessionService.Get(ctx.Context(), sessionIDOf(ctx))
	if err != nil {
		return s.internalError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"locale":  session.Locale(),
		"strings": s.strings.Table(session.Locale()),
	})
}

func (s *Server) GetSession(ctx *fiber.Ctx) error {
	session, err := s.c.SessionService.Get(ctx.Context(), sessionIDOf(ctx))
	if err != nil {
		return s.internalError(ctx, err)
	}
	return ctx.JSON(toSessionResponse(session))
}

func (s *Server) SetLocale(ctx *fiber.Ctx) error {
	var req localeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse(400, "Invalid request body"))
	}
	locale, ok := entity.ParseLocale(req.Locale)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse(400, fmt.Sprintf("unsupported locale %q", req.Locale)))
	}

	session, err := s.c.SessionService.SetLocale(ctx.Context(), sessionIDOf(ctx), locale)
	if err != nil {
		return s.internalError(ctx, err)
	}
	return ctx.JSON(toSessionResponse(session))
}

func (s *Server) SetMode(ctx *fiber.Ctx) error {
	var req modeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse(400, "Invalid request body"))
	}
	mode, ok := entity.ParseImageSource(req.Mode)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse(400, fmt.Sprintf("unsupported mode %q", req.Mode)))
	}

	session, err := s.c.SessionService.SetMode(ctx.Context(), sessionIDOf(ctx), mode)
	if err != nil {
		return s.internalError(ctx, err)
	}
	return ctx.JSON(toSessionResponse(session))
}

func (s *Server) EndSession(ctx *fiber.Ctx) error {
	id := sessionIDOf(ctx)
	session, err := s.c.SessionService.Get(ctx.Context(), id)
	if err != nil {
		return s.internalError(ctx, err)
	}
	locale := session.Locale()

	if err := s.c.SessionService.End(ctx.Context(), id); err != nil {
		return s.internalError(ctx, err)
	}
	ctx.ClearCookie(sessionCookie)
	return ctx.JSON(fiber.Map{"message": s.c.Translator.Text(locale, i18n.KeySessionEnded)})
}

// Recognize принимает файл из поля image; канал определяется режимом сессии.
func (s *Server) Recognize(ctx *fiber.Ctx) error {
	id := sessionIDOf(ctx)
	session, err := s.c.SessionService.Get(ctx.Context(), id)
	if err != nil {
		return s.internalError(ctx, err)
	}
	locale := session.Locale()
	tr := s.c.Translator

	var (
		filename string
		data     []byte
	)
	if fh, err := ctx.FormFile("image"); err == nil {
		if data, err = readFormFile(fh); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse(400, tr.Text(locale, i18n.KeyDecodeError)))
		}
		filename = fh.Filename
	}

	// Канал (камера или загрузка) определяется внутри запроса по режиму сессии.
	out, err := s.c.RecognitionService.RecognizeFile(ctx.Context(), id, filename, data)
	if err != nil {
		s.log.Error("recognition failed", zap.String("session", id), zap.Error(err))
		status := fiber.StatusInternalServerError
		if errors.Is(err, entity.ErrDetectorUnavailable) {
			status = fiber.StatusServiceUnavailable
		}
		return ctx.Status(status).JSON(errorResponse(status, tr.Text(locale, i18n.KeyDetectionError)))
	}

	res := recognizeResponse{
		Outcome:      string(out.Outcome),
		Header:       tr.Text(locale, i18n.KeyResultLabel),
		HistoryIndex: out.HistoryIndex,
		Blocks:       []blockResponse{},
	}

	switch out.Outcome {
	case app.OutcomeNoInput:
		res.Message = tr.Text(locale, i18n.KeyNoImagePrompt)
	case app.OutcomeDecodeError:
		res.Message = tr.Text(locale, i18n.KeyDecodeError)
		if errors.Is(out.Err, entity.ErrUnsupportedType) {
			res.Message = tr.Text(locale, i18n.KeyUnsupportedType)
		}
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(res)
	case app.OutcomeEmpty:
		res.Message = tr.Text(locale, i18n.KeyNotIdentified)
	case app.OutcomeRendered:
		res.Caption = s.imageCaption(locale, out.Image.Source)
		for _, block := range out.View.Blocks {
			res.Blocks = append(res.Blocks, s.toBlockResponse(locale, block))
		}
	}

	return ctx.JSON(res)
}

func (s *Server) GetHistory(ctx *fiber.Ctx) error {
	id := sessionIDOf(ctx)
	session, err := s.c.SessionService.Get(ctx.Context(), id)
	if err != nil {
		return s.internalError(ctx, err)
	}
	locale := session.Locale()
	tr := s.c.Translator

	entries, err := s.c.SessionService.History(ctx.Context(), id)
	if err != nil {
		return s.internalError(ctx, err)
	}

	res := historyResponse{
		Title:   tr.Text(locale, i18n.KeyHistoryLabel),
		Entries: make([]historyEntryResponse, 0, len(entries)),
	}
	if len(entries) == 0 {
		res.Message = tr.Text(locale, i18n.KeyHistoryEmpty)
	}

	for i, entry := range entries {
		number := i + 1
		items := entry.Detections.Items()
		detections := make([]detectionResponse, 0, len(items))
		for _, d := range items {
			detections = append(detections, detectionResponse{Label: d.Label, Confidence: d.Confidence})
		}
		res.Entries = append(res.Entries, historyEntryResponse{
			Number:     number,
			Title:      tr.Text(locale, i18n.KeyHistoryRecord, number),
			Caption:    tr.Text(locale, i18n.KeyHistoryCaption),
			Labels:     entry.Detections.Labels(),
			Detections: detections,
			ImageURL:   fmt.Sprintf("/api/history/%d/image", number),
			RecordedAt: entry.RecordedAt,
		})
	}

	return ctx.JSON(res)
}

func (s *Server) GetHistoryImage(ctx *fiber.Ctx) error {
	number, err := ctx.ParamsInt("index")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse(400, "index must be a number"))
	}

	session, err := s.c.SessionService.Get(ctx.Context(), sessionIDOf(ctx))
	if err != nil {
		return s.internalError(ctx, err)
	}

	entry, ok := session.History.At(number)
	if !ok || entry.Image == nil || len(entry.Image.Thumbnail) == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(errorResponse(404, "record not found"))
	}

	ctx.Set(fiber.HeaderContentType, "image/jpeg")
	return ctx.Send(entry.Image.Thumbnail)
}

func (s *Server) toBlockResponse(locale entity.Locale, block app.SpeciesBlock) blockResponse {
	tr := s.c.Translator
	res := blockResponse{
		Label:      block.Detection.Label,
		Confidence: block.Detection.Confidence,
		Title:      tr.Text(locale, i18n.KeyScientificName, block.Detection.Label, block.Detection.Confidence),
		Found:      block.Found(),
	}
	if block.Found() {
		for _, f := range block.Record.Fields() {
			res.Fields = append(res.Fields, fieldResponse{
				Key:   string(f.Field),
				Label: tr.Text(locale, string(f.Field)),
				Value: f.Value,
			})
		}
	}
	return res
}

func (s *Server) imageCaption(locale entity.Locale, mode entity.ImageSource) string {
	if mode == entity.SourceUpload {
		return s.c.Translator.Text(locale, i18n.KeyUploadedCaption)
	}
	return s.c.Translator.Text(locale, i18n.KeyCapturedCaption)
}

func (s *Server) internalError(ctx *fiber.Ctx, err error) error {
	s.log.Error("request failed", zap.String("path", ctx.Path()), zap.Error(err))
	return ctx.Status(fiber.StatusInternalServerError).JSON(errorResponse(500, "internal error"))
}

func toSessionResponse(session *entity.Session) sessionResponse {
	return sessionResponse{
		ID:           session.ID,
		Locale:       string(session.Locale()),
		Mode:         string(session.Mode()),
		HistoryCount: session.History.Len(),
	}
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open form file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "read form file")
	}
	return data, nil
}
