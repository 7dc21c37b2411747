package main

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rerate/commands"
	"rerate/config"
	"rerate/handlers"
	"rerate/obs"
	"rerate/services"
)

func main() {
	cfg := config.MustLoad()
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel, cfg.LogFile)

	catalog, err := services.LoadCatalog(cfg.RateTablePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.RateTablePath).Msg("load rate table")
	}
	engine := services.NewEngine(catalog)

	var metrics *obs.Metrics
	if cfg.MetricsEnabled {
		metrics = obs.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
	}

	app := pocketbase.New()
	app.RootCmd.AddCommand(commands.NewQuoteCommand(engine, logger))

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(obs.RequestLogger{Logger: logger, Metrics: metrics}.Middleware)

		if cfg.MetricsEnabled {
			se.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		h := handlers.NewRerate(engine, logger, metrics)
		handlers.RegisterRoutes(se, h, cfg.AuthRequired)

		logger.Info().
			Str("env", cfg.AppEnv).
			Bool("auth_required", cfg.AuthRequired).
			Bool("metrics", cfg.MetricsEnabled).
			Int("plans", len(catalog.Plans)).
			Msg("rerate routes registered")
		return se.Next()
	})

	if err := app.Start(); err != nil {
		logger.Fatal().Err(err).Msg("pocketbase stopped")
	}
}
