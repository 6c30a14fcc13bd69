package command

import (
	"context"
	"strings"

	"github.com/tair/production-costing/internal/sales/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/logger"
)

// RegisterClientCommand represents the command to register a client
type RegisterClientCommand struct {
	Name string
}

// RegisterClientHandler handles register client command
type RegisterClientHandler struct {
	repo domain.ClientRepository
}

// NewRegisterClientHandler creates a new register client handler
func NewRegisterClientHandler(repo domain.ClientRepository) *RegisterClientHandler {
	return &RegisterClientHandler{repo: repo}
}

// Handle registers an active client. Names are unique.
func (h *RegisterClientHandler) Handle(ctx context.Context, cmd RegisterClientCommand) (*domain.Client, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "client name is required")
	}

	c := &domain.Client{Name: name, Active: true}
	if err := h.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("client_id", c.ID).
		Str("name", c.Name).
		Msg("Client registered")
	return c, nil
}
