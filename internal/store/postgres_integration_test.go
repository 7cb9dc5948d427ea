//go:build integration

package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE advisory_tenders")
		s.Close()
	})

	return s
}

func TestCreateAndGetTender(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	deadline := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	tender := NewTender("EXP-INT-1", sampleRecord(deadline))

	if err := s.CreateTender(ctx, tender); err != nil {
		t.Fatalf("CreateTender failed: %v", err)
	}
	if tender.ID == uuid.Nil {
		t.Fatal("expected non-nil tender ID after create")
	}

	got, err := s.GetTender(ctx, tender.ID)
	if err != nil {
		t.Fatalf("GetTender failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected tender, got nil")
	}
	if got.Title != tender.Title {
		t.Errorf("expected title %q, got %q", tender.Title, got.Title)
	}
	if !got.Deadline.Equal(deadline) {
		t.Errorf("expected deadline %v, got %v", deadline, got.Deadline)
	}
	if len(got.RequiredTechnologies) != 2 {
		t.Errorf("expected 2 technologies, got %v", got.RequiredTechnologies)
	}
	if len(got.SimilarTenders) != 1 || got.SimilarTenders[0].Winner != "Acme" {
		t.Errorf("expected similar tenders round-trip, got %+v", got.SimilarTenders)
	}
	if got.Status != StatusOpen {
		t.Errorf("expected status open, got %s", got.Status)
	}
	if got.GoNoGoScore != nil {
		t.Errorf("expected no score before evaluation, got %d", *got.GoNoGoScore)
	}
}

func TestGetTenderNotFound(t *testing.T) {
	s := setupTestDB(t)
	got, err := s.GetTender(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetTender failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}
}

func TestUpdateTenderEvaluation(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	tender := NewTender("EXP-INT-2", sampleRecord(time.Now().Add(72*time.Hour).UTC()))
	if err := s.CreateTender(ctx, tender); err != nil {
		t.Fatalf("CreateTender failed: %v", err)
	}

	ev := &scoring.Evaluation{
		Criteria: []scoring.Criterion{{ID: scoring.CriterionBudget, Weight: 2, Score: 10, Rationale: "High impact"}},
		Decision: scoring.Decision{PercentScore: 55, Label: scoring.LabelReview},
	}
	tender.ApplyEvaluation(ev, time.Now().UTC())
	tender.Status = StatusEvaluation
	if err := s.UpdateTender(ctx, tender); err != nil {
		t.Fatalf("UpdateTender failed: %v", err)
	}

	got, _ := s.GetTender(ctx, tender.ID)
	if got.Status != StatusEvaluation {
		t.Errorf("expected evaluation status, got %s", got.Status)
	}
	if got.GoNoGoScore == nil || *got.GoNoGoScore != 55 {
		t.Errorf("expected score 55, got %v", got.GoNoGoScore)
	}
	if got.Decision != scoring.LabelReview {
		t.Errorf("expected REVIEW, got %s", got.Decision)
	}
	if len(got.Criteria) != 1 || got.Criteria[0].Rationale != "High impact" {
		t.Errorf("expected criteria round-trip, got %+v", got.Criteria)
	}

	if err := s.UpdateTender(ctx, &Tender{ID: uuid.New(), Deadline: time.Now()}); err == nil {
		t.Error("expected error updating unknown tender")
	}
}

func TestListAndOpenTenders(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(24 * time.Hour)

	late := NewTender("late", sampleRecord(base.AddDate(0, 0, 30)))
	soon := NewTender("soon", sampleRecord(base.AddDate(0, 0, 3)))
	closed := NewTender("closed", sampleRecord(base.AddDate(0, 0, -1)))
	closed.Status = StatusClosed
	for _, tender := range []*Tender{late, soon, closed} {
		if err := s.CreateTender(ctx, tender); err != nil {
			t.Fatalf("CreateTender failed: %v", err)
		}
	}

	open, err := s.GetOpenTenders(ctx)
	if err != nil {
		t.Fatalf("GetOpenTenders failed: %v", err)
	}
	if len(open) != 2 || open[0].Code != "soon" {
		t.Errorf("expected [soon late], got %d tenders", len(open))
	}

	st := StatusClosed
	list, err := s.ListTenders(ctx, TenderFilter{Status: &st})
	if err != nil {
		t.Fatalf("ListTenders failed: %v", err)
	}
	if len(list) != 1 || list[0].Code != "closed" {
		t.Errorf("expected only closed tender, got %d", len(list))
	}
}

func TestUpdateClosedTenderRejected(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	tender := NewTender("EXP-INT-CLOSED", sampleRecord(time.Now().Add(48*time.Hour)))
	if err := s.CreateTender(ctx, tender); err != nil {
		t.Fatalf("CreateTender failed: %v", err)
	}

	stale := *tender
	tender.Status = StatusClosed
	if err := s.UpdateTender(ctx, tender); err != nil {
		t.Fatalf("closing tender failed: %v", err)
	}

	stale.Status = StatusEvaluation
	if err := s.UpdateTender(ctx, &stale); !errors.Is(err, ErrTenderClosed) {
		t.Fatalf("expected ErrTenderClosed, got %v", err)
	}

	got, err := s.GetTender(ctx, tender.ID)
	if err != nil {
		t.Fatalf("GetTender failed: %v", err)
	}
	if got.Status != StatusClosed {
		t.Errorf("expected status closed, got %s", got.Status)
	}

	if err := s.UpdateTender(ctx, &Tender{ID: uuid.New()}); err == nil || errors.Is(err, ErrTenderClosed) {
		t.Errorf("expected not-found error for unknown tender, got %v", err)
	}
}
