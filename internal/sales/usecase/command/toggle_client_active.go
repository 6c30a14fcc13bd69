package command

import (
	"context"

	"github.com/tair/production-costing/internal/sales/domain"
	"github.com/tair/production-costing/pkg/database"
	"github.com/tair/production-costing/pkg/logger"
)

// ToggleClientActiveHandler flips a client's active flag
type ToggleClientActiveHandler struct {
	repo domain.ClientRepository
	tx   database.Transactor
}

// NewToggleClientActiveHandler creates a new toggle handler
func NewToggleClientActiveHandler(repo domain.ClientRepository, tx database.Transactor) *ToggleClientActiveHandler {
	return &ToggleClientActiveHandler{repo: repo, tx: tx}
}

// Handle returns the client with its new state.
func (h *ToggleClientActiveHandler) Handle(ctx context.Context, clientID uint) (*domain.Client, error) {
	var client *domain.Client
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := h.repo.FindByID(ctx, clientID)
		if err != nil {
			return err
		}
		if err := h.repo.SetActive(ctx, c.ID, !c.Active); err != nil {
			return err
		}
		c.Active = !c.Active
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("client_id", client.ID).
		Bool("active", client.Active).
		Msg("Client active flag toggled")
	return client, nil
}
