package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/outbound"
	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/source"
	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/usecase"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgconfig"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	UUID      pkguid.StringID
	Snowflake pkguid.NumberID
}

const keyThreshold = "delivery.early_stop.skipped_old_threshold"

type settings struct {
	BaseURL   string        `key:"delivery.endpoint.base_url" validate:"required,url"`
	Path      string        `key:"delivery.endpoint.path"`
	Secret    string        `key:"delivery.secret" validate:"required"`
	Source    string        `key:"delivery.source.path" validate:"required"`
	ChunkSize int           `key:"delivery.chunk_size" validate:"gte=0"`
	Delay     time.Duration `key:"delivery.delay" validate:"gte=0"`
	Timeout   time.Duration `key:"delivery.timeout" validate:"gte=0"`
	Preview   int           `key:"delivery.body_preview" validate:"gte=0"`
	Threshold int           `key:"delivery.early_stop.skipped_old_threshold" validate:"gte=1"`
}

func loadSettings(cfg pkgconfig.Config) (settings, error) {
	s := settings{
		BaseURL:   cfg.GetString("delivery.endpoint.base_url"),
		Path:      cfg.GetString("delivery.endpoint.path"),
		Secret:    cfg.GetString("delivery.secret"),
		Source:    cfg.GetString("delivery.source.path"),
		ChunkSize: int(cfg.GetInt("delivery.chunk_size")),
		Delay:     cfg.GetDuration("delivery.delay"),
		Timeout:   cfg.GetDuration("delivery.timeout"),
		Preview:   int(cfg.GetInt("delivery.body_preview")),
		Threshold: usecase.DefaultSkippedOldThreshold,
	}
	if cfg.IsSet(keyThreshold) {
		s.Threshold = int(cfg.GetInt(keyThreshold))
	}

	return s, pkgconfig.Validate(s)
}

// Module uploads the configured csv file to the ingestion endpoint.
type Module struct {
	uc         *usecase.Usecase
	sourcePath string
}

func New(dep Dependency) (*Module, error) {
	s, err := loadSettings(dep.Config)
	if err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(s.BaseURL, s.Path)
	if err != nil {
		return nil, fmt.Errorf("delivery endpoint: %w", err)
	}

	webhook, err := outbound.NewWebhook(outbound.Config{
		Endpoint:     endpoint,
		Secret:       s.Secret,
		Timeout:      s.Timeout,
		PreviewLimit: s.Preview,
	}, dep.Snowflake)
	if err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		Transport:           webhook,
		ID:                  dep.UUID,
		ChunkSize:           s.ChunkSize,
		Delay:               s.Delay,
		SkippedOldThreshold: s.Threshold,
	})

	slog.Debug("delivery module ready", "endpoint", endpoint, "source", s.Source)

	return &Module{uc: uc, sourcePath: s.Source}, nil
}

// Upload delivers every row of the source file. The report is valid even
// when an error is returned.
func (m *Module) Upload(ctx context.Context) (usecase.Report, error) {
	file, err := source.Open(m.sourcePath)
	if err != nil {
		return usecase.Report{}, err
	}
	defer file.Close()

	return m.uc.Run(ctx, file.Records())
}
