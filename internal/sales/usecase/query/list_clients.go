package query

import (
	"context"

	"github.com/tair/production-costing/internal/sales/domain"
)

// ListClientsQuery represents the query to list clients
type ListClientsQuery struct {
	OnlyActive bool
}

// ListClientsHandler handles list clients query
type ListClientsHandler struct {
	repo domain.ClientRepository
}

// NewListClientsHandler creates a new list clients handler
func NewListClientsHandler(repo domain.ClientRepository) *ListClientsHandler {
	return &ListClientsHandler{repo: repo}
}

// Handle returns clients ordered by name
func (h *ListClientsHandler) Handle(ctx context.Context, q ListClientsQuery) ([]domain.Client, error) {
	clients, err := h.repo.List(ctx, q.OnlyActive)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}
