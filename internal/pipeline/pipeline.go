// Package pipeline tracks registered tenders: it scores them on submission,
// re-scores open ones as their deadlines approach and closes expired ones.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Advisory/internal/config"
	"github.com/MikeSquared-Agency/Advisory/internal/hermes"
	"github.com/MikeSquared-Agency/Advisory/internal/metrics"
	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
	"github.com/MikeSquared-Agency/Advisory/internal/store"
)

var (
	ErrTenderNotFound = errors.New("tender not found")
	ErrTenderClosed   = store.ErrTenderClosed
)

// CapacitySource supplies the capacity constants for one evaluation round.
type CapacitySource interface {
	Capacity(ctx context.Context) scoring.Capacity
}

type Pipeline struct {
	store     store.Store
	hermes    hermes.Client
	evaluator *scoring.Evaluator
	capacity  CapacitySource
	metrics   *metrics.Collector
	cfg       *config.Config
	logger    *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New wires a pipeline. h and m may be nil. The evaluator's clock decides
// which tenders are due.
func New(s store.Store, h hermes.Client, ev *scoring.Evaluator, cs CapacitySource, m *metrics.Collector, cfg *config.Config, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		store:     s,
		hermes:    h,
		evaluator: ev,
		capacity:  cs,
		metrics:   m,
		cfg:       cfg,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Submit registers a validated tender record as an open tender and scores it.
func (p *Pipeline) Submit(ctx context.Context, code string, rec *scoring.TenderRecord) (*store.Tender, *scoring.Evaluation, error) {
	if err := rec.Validate(); err != nil {
		return nil, nil, err
	}

	t := store.NewTender(code, rec)
	if err := p.store.CreateTender(ctx, t); err != nil {
		return nil, nil, fmt.Errorf("create tender: %w", err)
	}
	p.logger.Info("tender registered", "tender_id", t.ID, "code", t.Code, "deadline", t.Deadline)
	p.publish(hermes.SubjectTenderCreated(t.ID.String()), hermes.TenderCreatedEvent{
		TenderID: t.ID.String(),
		Code:     t.Code,
		Title:    t.Title,
		Budget:   t.Budget,
		Deadline: t.Deadline,
	})

	ev, err := p.refresh(ctx, t, p.capacity.Capacity(ctx), p.evaluator.Now(), true)
	if err != nil {
		return t, nil, err
	}
	return t, ev, nil
}

// Reevaluate scores a stored tender again with the current clock and capacity.
// A tender whose deadline has passed is closed instead and ErrTenderClosed is
// returned, without waiting for the next sweep.
func (p *Pipeline) Reevaluate(ctx context.Context, id uuid.UUID) (*store.Tender, *scoring.Evaluation, error) {
	t, err := p.store.GetTender(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get tender: %w", err)
	}
	if t == nil {
		return nil, nil, ErrTenderNotFound
	}
	if t.Status == store.StatusClosed {
		return t, nil, ErrTenderClosed
	}

	now := p.evaluator.Now()
	if !now.Before(t.Deadline) {
		if err := p.close(ctx, t); err != nil && !errors.Is(err, ErrTenderClosed) {
			return nil, nil, err
		}
		return t, nil, ErrTenderClosed
	}

	ev, err := p.refresh(ctx, t, p.capacity.Capacity(ctx), now, true)
	if err != nil {
		return t, nil, err
	}
	return t, ev, nil
}

// refresh qualifies t, persists the outcome and emits events. When announce
// is false only decision changes are published.
func (p *Pipeline) refresh(ctx context.Context, t *store.Tender, capacity scoring.Capacity, now time.Time, announce bool) (*scoring.Evaluation, error) {
	ev, err := p.evaluator.QualifyAt(t.Record(), capacity, now)
	if err != nil {
		return nil, err
	}

	prevLabel := t.Decision
	prevScore := 0
	if t.GoNoGoScore != nil {
		prevScore = *t.GoNoGoScore
	}

	t.ApplyEvaluation(&ev, now.UTC())
	if t.Status == store.StatusOpen {
		t.Status = store.StatusEvaluation
	}
	if err := p.store.UpdateTender(ctx, t); err != nil {
		return nil, fmt.Errorf("update tender: %w", err)
	}
	p.metrics.ObserveEvaluation(string(ev.Decision.Label), ev.Decision.PercentScore)

	id := t.ID.String()
	if announce {
		p.publish(hermes.SubjectTenderEvaluated(id), hermes.TenderEvaluatedEvent{
			TenderID:      id,
			PercentScore:  ev.Decision.PercentScore,
			Decision:      string(ev.Decision.Label),
			DaysRemaining: ev.DaysRemaining,
			MatchRatio:    ev.MatchRatio,
			Condition:     string(ev.Condition),
			EvaluatedAt:   now.UTC(),
		})
	}
	if prevLabel != "" && prevLabel != ev.Decision.Label {
		p.logger.Info("tender decision changed",
			"tender_id", id,
			"from", prevLabel,
			"to", ev.Decision.Label,
			"percent_score", ev.Decision.PercentScore,
		)
		p.publish(hermes.SubjectDecisionChanged(id), hermes.DecisionChangedEvent{
			TenderID:         id,
			PreviousDecision: string(prevLabel),
			Decision:         string(ev.Decision.Label),
			PreviousScore:    prevScore,
			PercentScore:     ev.Decision.PercentScore,
		})
	}
	return &ev, nil
}

// close marks t closed. It returns ErrTenderClosed, without publishing, when
// another writer closed it first.
func (p *Pipeline) close(ctx context.Context, t *store.Tender) error {
	t.Status = store.StatusClosed
	if err := p.store.UpdateTender(ctx, t); err != nil {
		return fmt.Errorf("close tender %s: %w", t.ID, err)
	}
	p.logger.Info("tender closed, deadline passed", "tender_id", t.ID, "deadline", t.Deadline)
	p.publish(hermes.SubjectTenderClosed(t.ID.String()), hermes.TenderClosedEvent{
		TenderID: t.ID.String(),
		Deadline: t.Deadline,
		Decision: string(t.Decision),
	})
	return nil
}

func (p *Pipeline) publish(subject string, evt interface{}) {
	if p.hermes == nil {
		return
	}
	if err := p.hermes.Publish(subject, evt); err != nil {
		p.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
