package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgconfig"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkglog"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgrouter"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgroutine"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkguid"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func defaultConfigPath() string {
	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}
	return "/config/config.yaml"
}

func (a *App) initConfig(cmd *cobra.Command) error {
	if err := pkgconfig.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := pkgconfig.NewViper(a.configPath,
		pkgconfig.WithDefaults(defaultConfig()),
		pkgconfig.WithEnvPrefix(envPrefix),
		pkgconfig.WithFlags(cmd.Flags()),
	)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	pkglog.InitLogging(os.Stderr, pkglog.ParseLevel(cfg.GetString("log.level")))

	a.config = cfg
	a.addCloser("Config", func(context.Context) error {
		return cfg.Close()
	})

	return nil
}

func (a *App) initLibraries() error {
	a.goroutine = pkgroutine.NewManager(10)
	a.uuid = pkguid.NewUUID()

	sf, err := pkguid.NewSnowflake()
	if err != nil {
		return fmt.Errorf("init snowflake: %w", err)
	}
	a.snowflake = sf

	return nil
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("receiver.address"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}
	a.closerFn[name] = fn
}
