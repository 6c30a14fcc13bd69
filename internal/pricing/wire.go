//go:build wireinject
// +build wireinject

package pricing

import (
	"time"

	"github.com/google/wire"

	proddomain "github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/cache"
)

// InitializeModule wires the pricing query over the final product catalog
func InitializeModule(repo proddomain.FinalProductRepository, c cache.Cache, ttl time.Duration) (*Module, error) {
	wire.Build(HandlerSet)
	return nil, nil
}
