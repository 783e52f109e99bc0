package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sgqpro/sgq-api/internal/application/analytics"
	"github.com/sgqpro/sgq-api/internal/application/auth"
	"github.com/sgqpro/sgq-api/internal/application/retornados"
	"github.com/sgqpro/sgq-api/internal/application/usecase"
	"github.com/sgqpro/sgq-api/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	TonerUC     *usecase.TonerUseCase
	RetornadoUC *usecase.RetornadoUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *analytics.DashboardUseCase
	RelatorioUC *retornados.RelatorioUseCase
	JWTSecret   string
	ReportKey   string
	// FetchTimeout prazo das rotas que drenam todos os retornados; zero usa DefaultFetchTimeout.
	FetchTimeout time.Duration
	// Health verifica dependências externas; nil responde sempre ok.
	Health func(c *fiber.Ctx) error
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	health := deps.Health
	if health == nil {
		health = func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) }
	}
	app.Get("/health", health)

	api := app.Group("/api")
	drenagem := RequestDeadline(deps.FetchTimeout)

	// BI (chave de API, sem JWT)
	relatorioHandler := NewRelatorioHandler(deps.RelatorioUC)
	api.Get("/v1/relatorios/retornados", RequireAPIKey(deps.ReportKey), drenagem, relatorioHandler.Retornados)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	gestao := RequireRole(entity.RoleAdmin, entity.RoleQualidade)
	registro := RequireRole(entity.RoleAdmin, entity.RoleQualidade, entity.RoleOperador)

	// Toners: leitura para todos, escrita para gestão da qualidade
	toners := protected.Group("/toners")
	tonerHandler := NewTonerHandler(deps.TonerUC)
	toners.Get("/", tonerHandler.List)
	toners.Get("/:id", tonerHandler.GetByID)
	toners.Post("/", gestao, tonerHandler.Create)
	toners.Put("/:id", gestao, tonerHandler.Update)
	toners.Delete("/:id", gestao, tonerHandler.Delete)

	// Retornados
	rets := protected.Group("/retornados")
	retornadoHandler := NewRetornadoHandler(deps.RetornadoUC)
	rets.Get("/", retornadoHandler.List)
	rets.Get("/todos", drenagem, retornadoHandler.Todos)
	rets.Get("/:id", retornadoHandler.GetByID)
	rets.Post("/", registro, retornadoHandler.Create)
	rets.Put("/:id", registro, retornadoHandler.Update)
	rets.Delete("/:id", gestao, retornadoHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/retornados", drenagem, dashboardHandler.Retornados)

	// Usuários (admin)
	users := protected.Group("/usuarios", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
