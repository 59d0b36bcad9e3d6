package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgconfig"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkglog"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgrouter"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgroutine"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkguid"
	"github.com/spf13/cobra"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// command line
	root       *cobra.Command
	configPath string

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	goroutine *pkgroutine.Manager

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging(os.Stderr, slog.LevelInfo)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initCommands()

	return app
}

// Execute runs the command selected by the process arguments.
func (a *App) Execute() error {
	defer a.cancel()

	return a.root.ExecuteContext(a.ctx)
}
