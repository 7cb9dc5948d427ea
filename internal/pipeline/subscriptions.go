package pipeline

import (
	"context"

	"github.com/MikeSquared-Agency/Advisory/internal/hermes"
	"github.com/MikeSquared-Agency/Advisory/internal/intake"
)

// SetupSubscriptions registers tender intake over NATS.
func (p *Pipeline) SetupSubscriptions() error {
	if p.hermes == nil {
		return nil
	}
	return p.hermes.Subscribe(hermes.SubjectTenderSubmit, func(_ string, data []byte) {
		p.handleSubmit(context.Background(), data)
	})
}

func (p *Pipeline) handleSubmit(ctx context.Context, data []byte) {
	payload, err := intake.DecodePayload(data)
	if err != nil {
		p.logger.Warn("invalid tender submission", "error", err)
		return
	}
	rec, err := payload.Record()
	if err != nil {
		p.logger.Warn("rejected tender submission", "code", payload.Code, "error", err)
		return
	}
	t, ev, err := p.Submit(ctx, payload.Code, rec)
	if err != nil {
		p.logger.Error("failed to register tender from NATS", "code", payload.Code, "error", err)
		return
	}
	p.logger.Info("tender registered from NATS",
		"tender_id", t.ID,
		"percent_score", ev.Decision.PercentScore,
		"decision", ev.Decision.Label,
	)
}
