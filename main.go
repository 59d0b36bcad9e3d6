package main

import (
	"log/slog"
	"os"

	"github.com/m4ur1n0/rtvf-information-automation/internal/app"
)

func main() {
	if err := app.New().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
