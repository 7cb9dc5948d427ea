// Package capacity supplies the company constants the qualification scorer
// needs, refreshing the active project count from a resource-planning
// service when one is configured.
package capacity

import (
	"context"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
)

const fetchTimeout = 5 * time.Second

type Provider struct {
	static scoring.Capacity
	client Client
	logger *slog.Logger
}

// NewProvider returns a provider over the static constants. client may be nil.
func NewProvider(static scoring.Capacity, client Client, logger *slog.Logger) *Provider {
	return &Provider{static: static, client: client, logger: logger}
}

// Static returns a copy of the configured constants.
func (p *Provider) Static() scoring.Capacity {
	c := p.static
	c.Credentials = append([]string(nil), p.static.Credentials...)
	return c
}

// Capacity returns the effective capacity. A failed or missing live lookup
// falls back to the static constants.
func (p *Provider) Capacity(ctx context.Context) scoring.Capacity {
	c := p.Static()
	if p.client == nil {
		return c
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	load, err := p.client.GetLoad(ctx)
	if err != nil {
		p.logger.Warn("resource planner unavailable, using static capacity", "error", err)
		return c
	}
	c.CurrentActiveProjects = load.ActiveProjects
	if load.Limit > 0 {
		c.ActiveProjectsLimit = load.Limit
	}
	return c
}
