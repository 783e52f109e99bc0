package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/sgqpro/sgq-api/internal/application/analytics"
	"github.com/sgqpro/sgq-api/internal/application/auth"
	"github.com/sgqpro/sgq-api/internal/application/retornados"
	"github.com/sgqpro/sgq-api/internal/application/usecase"
	"github.com/sgqpro/sgq-api/internal/infrastructure/cache"
	"github.com/sgqpro/sgq-api/internal/infrastructure/migration"
	"github.com/sgqpro/sgq-api/internal/infrastructure/postgres"
	httpRouter "github.com/sgqpro/sgq-api/internal/interfaces/http"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "aplica migrações pendentes antes de subir")
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log.Info().
		Str("env", cfg.App.Env).
		Int("report_page_size", cfg.Report.PageSize).
		Msg("iniciando aplicação")

	if autoMigrate {
		m, err := migration.New(cfg.DB.ConnectionString(), log.Component("migration"))
		if err != nil {
			return err
		}
		err = m.Up()
		_ = m.Close()
		if err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexão com PostgreSQL")
		return err
	}
	defer pool.Close()

	// Redis é opcional: sem REDIS_ADDR o relatório é sempre buscado no banco.
	var reportCache retornados.ReportCache = retornados.NopCache{}
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis indisponível, relatório sem cache")
		} else {
			defer rdb.Close()
			reportCache = cache.NewRedisReportCache(rdb, "sgq:")
		}
	}
	if cfg.Report.APIKey == "" {
		log.Warn().Msg("REPORT_API_KEY vazio: endpoint de BI recusará todas as requisições")
	}

	tonerRepo := postgres.NewTonerRepository(pool)
	retornadoRepo := postgres.NewRetornadoRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	fetcher := retornados.NewFetcher(retornadoRepo, retornados.FetcherOptions{
		PageSize: cfg.Report.PageSize,
		Retries:  cfg.Report.PageRetries,
		Logger:   log.Component("retornados.fetcher"),
	})
	relatorioUC := retornados.NewRelatorioUseCase(fetcher, reportCache, cfg.Report.CacheTTL, time.Local, log.Component("relatorio"))
	tonerUC := usecase.NewTonerUseCase(tonerRepo, retornadoRepo, relatorioUC)
	retornadoUC := usecase.NewRetornadoUseCase(retornadoRepo, tonerRepo, fetcher, relatorioUC, log.Component("retornados"))
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := analytics.NewDashboardUseCase(fetcher, time.Local)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // relatório drena várias páginas
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SGQ Pro API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		TonerUC:      tonerUC,
		RetornadoUC:  retornadoUC,
		UserUC:       userUC,
		DashboardUC:  dashboardUC,
		RelatorioUC:  relatorioUC,
		JWTSecret:    cfg.JWT.Secret,
		ReportKey:    cfg.Report.APIKey,
		FetchTimeout: cfg.Report.FetchTimeout,
		Health:       healthHandler(pool, rdb),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
	return nil
}

// healthHandler verifica banco e, se configurado, Redis.
func healthHandler(pool *pgxpool.Pool, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status, code := "ok", fiber.StatusOK
		checks := fiber.Map{"database": "ok"}
		if err := pool.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			status, code = "degraded", fiber.StatusServiceUnavailable
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				// sem cache o relatório continua funcionando
				checks["redis"] = err.Error()
				status = "degraded"
			}
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "service": cfg.App.Name, "checks": checks})
	}
}
