package inbound

import (
	"context"
	"io"
	"net/http"

	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgrouter"
	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver/entity"
	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver/usecase"
)

type uc interface {
	Ingest(ctx context.Context, r io.Reader) (entity.IngestResult, error)
	List(ctx context.Context, filter usecase.ListFilter) (usecase.ListResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, secret string) {
	end := &HTTPEndpoint{uc: uc, secret: secret, maxBody: maxBodyBytes}

	r.Handle(http.MethodPost, "/webhook/email", http.HandlerFunc(end.Webhook))

	r.GET("/api/emails", end.Emails) // ?limit=&offset=&q=&since=&until=
}
