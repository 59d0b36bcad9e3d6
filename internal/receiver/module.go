package receiver

import (
	"log/slog"
	"time"

	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgconfig"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgrouter"
	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver/inbound"
	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver/store"
	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver/usecase"
)

type Dependency struct {
	Config pkgconfig.Config
	Router *pkgrouter.Router
}

type settings struct {
	Secret string        `key:"receiver.secret" validate:"required"`
	MaxAge time.Duration `key:"receiver.max_age" validate:"gte=0"`
}

// New registers the ingestion endpoints backed by an in-memory store.
func New(dep Dependency) error {
	s := settings{
		Secret: dep.Config.GetString("receiver.secret"),
		MaxAge: dep.Config.GetDuration("receiver.max_age"),
	}
	if err := pkgconfig.Validate(s); err != nil {
		return err
	}

	storage := store.NewInMemoryStore()
	uc := usecase.New(usecase.Dependency{
		Store:  storage,
		MaxAge: s.MaxAge,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, s.Secret)

	slog.Info("receiver module ready", "max_age", s.MaxAge.String())

	return nil
}
