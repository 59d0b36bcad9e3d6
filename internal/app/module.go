package app

import (
	"fmt"

	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver"
)

func (a *App) initModules() error {
	if err := receiver.New(receiver.Dependency{
		Config: a.config,
		Router: a.router,
	}); err != nil {
		return fmt.Errorf("init module receiver: %w", err)
	}

	return nil
}
