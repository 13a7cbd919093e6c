package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ehr/advisor/internal/config"
	"github.com/ehr/advisor/internal/domain/advisory"
	"github.com/ehr/advisor/internal/domain/medication"
	"github.com/ehr/advisor/internal/domain/patient"
	"github.com/ehr/advisor/internal/domain/protocol"
	"github.com/ehr/advisor/internal/platform/auth"
	"github.com/ehr/advisor/internal/platform/cdshooks"
	"github.com/ehr/advisor/internal/platform/middleware"
)

const version = "0.1.0"

// app holds the wired services. Repositories are injected so the server can
// be assembled over Postgres or in-memory stores.
type app struct {
	medications *medication.Service
	protocols   *protocol.Service
	advisor     *advisory.Service
}

func newApp(meds medication.MedicationRepository, patients patient.PatientRepository, protocols protocol.ProtocolRepository, cacheSize int, logger zerolog.Logger) (*app, error) {
	lookup, err := medication.NewCachedLookup(meds, cacheSize)
	if err != nil {
		return nil, err
	}
	return &app{
		medications: medication.NewService(meds),
		protocols:   protocol.NewService(protocols),
		advisor:     advisory.NewService(meds, lookup, patients, protocols, advisory.DefaultRules(), logger),
	}, nil
}

func newLogger(env, level string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return logger.Level(lvl)
}

func authConfig(cfg *config.Config) auth.JWTConfig {
	jwtCfg := auth.JWTConfig{
		Issuer:   cfg.AuthIssuer,
		Audience: cfg.AuthAudience,
		JWKSURL:  cfg.AuthJWKSURL,
		Skipper:  auth.AuthSkipper,
	}
	if cfg.AuthSigningKey != "" {
		jwtCfg.SigningKey = []byte(cfg.AuthSigningKey)
	}
	return jwtCfg
}

// newServer assembles the HTTP surface. dbHealth serves /health/db.
func newServer(cfg *config.Config, logger zerolog.Logger, a *app, dbHealth echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware(authConfig(cfg)))
	} else {
		e.Use(auth.JWTMiddleware(authConfig(cfg)))
	}
	e.Use(middleware.Audit(logger))

	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		Skipper:           auth.AuthSkipper,
	})
	e.Use(rateLimit)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/db", dbHealth)

	apiV1 := e.Group("/api/v1")
	medication.NewHandler(a.medications).RegisterRoutes(apiV1)
	protocol.NewHandler(a.protocols).RegisterRoutes(apiV1)
	advisory.NewHandler(a.advisor).RegisterRoutes(apiV1)

	hooks := cdshooks.NewHandler()
	a.advisor.RegisterCDSServices(hooks)
	hooks.RegisterRoutes(e)

	return e
}
