package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

func (p *Pipeline) Start(ctx context.Context) {
	p.wg.Add(1)
	go p.watchLoop(ctx)
}

func (p *Pipeline) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()
}

func (p *Pipeline) watchLoop(ctx context.Context) {
	defer p.wg.Done()
	ticker := time.NewTicker(p.cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Sweep(ctx)
		}
	}
}

// Sweep closes open tenders whose deadline has passed and re-scores the rest.
// Tenders closed concurrently by Reevaluate are skipped. Cancelling ctx stops
// the remaining work.
func (p *Pipeline) Sweep(ctx context.Context) {
	start := time.Now()
	tenders, err := p.store.GetOpenTenders(ctx)
	if err != nil {
		p.logger.Error("failed to get open tenders", "error", err)
		return
	}

	now := p.evaluator.Now()
	capacity := p.capacity.Capacity(ctx)
	var closed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency())
	for _, t := range tenders {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !now.Before(t.Deadline) {
				err := p.close(gctx, t)
				switch {
				case err == nil:
					closed.Add(1)
				case errors.Is(err, ErrTenderClosed):
					// already closed by Reevaluate
				default:
					p.logger.Warn("failed to close tender", "tender_id", t.ID, "error", err)
				}
				return nil
			}
			_, err := p.refresh(gctx, t, capacity, now, false)
			if err != nil && !errors.Is(err, ErrTenderClosed) {
				p.logger.Warn("failed to re-evaluate tender", "tender_id", t.ID, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Warn("watcher sweep interrupted", "error", err)
	}

	n := int(closed.Load())
	p.metrics.ObserveSweep(time.Since(start), len(tenders)-n, n)
	p.logger.Debug("watcher sweep done", "open", len(tenders)-n, "closed", n)
}

func (p *Pipeline) concurrency() int {
	if p.cfg.Watcher.Concurrency > 0 {
		return p.cfg.Watcher.Concurrency
	}
	return 1
}
