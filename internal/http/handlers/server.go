package handlers

import (
	"context"
	"net/http"

	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/eventlog"
	repo "github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/snapshot"
	"go.uber.org/zap"
)

// Deps are the collaborators a Server needs. Source is read for every
// report; writes go through the repositories and then invalidate Source
// when it supports it.
type Deps struct {
	Products          repo.ProductRepository
	Categories        repo.CategoryRepository
	Users             repo.UserRepository
	Source            snapshot.Source
	Events            eventlog.Log
	Tokens            *auth.TokenIssuer
	LowStockThreshold int
	Logger            *zap.Logger
}

type Server struct {
	productRepo       repo.ProductRepository
	categoryRepo      repo.CategoryRepository
	userRepo          repo.UserRepository
	source            snapshot.Source
	events            eventlog.Log
	tokens            *auth.TokenIssuer
	lowStockThreshold int
	logger            *zap.Logger
}

func NewServer(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	source := d.Source
	if source == nil {
		source = snapshot.NewRepoSource(d.Products, d.Categories)
	}
	events := d.Events
	if events == nil {
		events = eventlog.NewMemoryLog(0)
	}

	return &Server{
		productRepo:       d.Products,
		categoryRepo:      d.Categories,
		userRepo:          d.Users,
		source:            source,
		events:            events,
		tokens:            d.Tokens,
		lowStockThreshold: d.LowStockThreshold,
		logger:            logger,
	}
}

// Tokens exposes the issuer so the router can build the auth middleware.
func (s *Server) Tokens() *auth.TokenIssuer {
	return s.tokens
}

type invalidator interface {
	Invalidate(ctx context.Context)
}

// recordMutation drops cached snapshots and appends to the event log.
// Event log failures are logged; the write itself already succeeded.
func (s *Server) recordMutation(ctx context.Context, e eventlog.Event) {
	if inv, ok := s.source.(invalidator); ok {
		inv.Invalidate(ctx)
	}
	if err := s.events.Append(ctx, e); err != nil {
		s.logger.Warn("failed to append event",
			zap.String("action", string(e.Action)),
			zap.String("entity", string(e.Entity)),
			zap.Int("entity_id", e.EntityID),
			zap.Error(err))
	}
}

// respond writes data as JSON. Failures are logged; the status line may
// already be on the wire, so nothing else can be sent.
func (s *Server) respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		s.logger.Error("failed to write JSON response", zap.Int("status", status), zap.Error(err))
	}
}
