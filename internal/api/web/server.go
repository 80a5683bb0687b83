package web

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"plant-bot/internal/container"
	"plant-bot/internal/domain/entity"
)

const (
	sessionCookie = "plant_session"
	localSession  = "session_id"
)

// StringTable отдаёт полную таблицу строк языка для клиента
type StringTable interface {
	Table(locale entity.Locale) map[string]string
}

type Server struct {
	app     *fiber.App
	addr    string
	c       *container.Container
	strings StringTable
	log     *zap.Logger
}

// New собирает fiber-приложение со всеми маршрутами
func New(addr string, maxUpload int, c *container.Container, strings StringTable, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             maxUpload,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	s := &Server{
		app:     app,
		addr:    addr,
		c:       c,
		strings: strings,
		log:     log,
	}

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	s.registerRoutes(app.Group("/api", s.requestLogger, s.sessionMiddleware))

	return s
}

func (s *Server) registerRoutes(r fiber.Router) {
	r.Get("/strings", s.GetStrings)

	r.Get("/session", s.GetSession)
	r.Put("/session/locale", s.SetLocale)
	r.Put("/session/mode", s.SetMode)
	r.Delete("/session", s.EndSession)

	r.Post("/recognize", s.Recognize)
	r.Get("/history", s.GetHistory)
	r.Get("/history/:index/image", s.GetHistoryImage)
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

// Run слушает addr до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server is running", zap.String("addr", s.addr))
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case <-ctx.Done():
		return s.app.ShutdownWithTimeout(5 * time.Second)
	case err := <-errCh:
		return err
	}
}

// sessionMiddleware выдаёт cookie сессии, если её нет или она испорчена
func (s *Server) sessionMiddleware(ctx *fiber.Ctx) error {
	id := ctx.Cookies(sessionCookie)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		ctx.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	ctx.Locals(localSession, "web:"+id)
	return ctx.Next()
}

func (s *Server) requestLogger(ctx *fiber.Ctx) error {
	started := time.Now()
	err := ctx.Next()
	s.log.Debug("request",
		zap.String("method", ctx.Method()),
		zap.String("path", ctx.Path()),
		zap.Int("status", ctx.Response().StatusCode()),
		zap.Duration("took", time.Since(started)),
	)
	return err
}

func sessionIDOf(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(localSession).(string)
	return id
}
