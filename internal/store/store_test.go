package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
)

func TestTenderStatusValues(t *testing.T) {
	statuses := []TenderStatus{StatusOpen, StatusEvaluation, StatusClosed}
	expected := []string{"open", "evaluation", "closed"}
	for i, s := range statuses {
		if string(s) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("evaluation")
	require.NoError(t, err)
	assert.Equal(t, StatusEvaluation, st)

	_, err = ParseStatus("Open")
	assert.True(t, errors.Is(err, ErrInvalidStatus))
}

func sampleRecord(deadline time.Time) *scoring.TenderRecord {
	return &scoring.TenderRecord{
		Title:                "Regional open data portal",
		Budget:               250000,
		Deadline:             deadline,
		DurationMonths:       9,
		RequiredTechnologies: []string{"Cloud", "React"},
		SimilarTenders:       []scoring.SimilarTender{{Title: "Portal v1", Budget: 90000, Year: 2022, Winner: "Acme"}},
	}
}

func TestNewTenderAndRecord(t *testing.T) {
	deadline := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	tender := NewTender("EXP-2026-014", sampleRecord(deadline))

	assert.Equal(t, StatusOpen, tender.Status)
	assert.Equal(t, "EXP-2026-014", tender.Code)

	rec := tender.Record()
	assert.Equal(t, sampleRecord(deadline), rec)

	// the record must not alias the tender's slice
	rec.RequiredTechnologies[0] = "COBOL"
	assert.Equal(t, "Cloud", tender.RequiredTechnologies[0])
}

func TestApplyEvaluation(t *testing.T) {
	tender := &Tender{}
	at := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)
	ev := &scoring.Evaluation{
		Criteria: []scoring.Criterion{{ID: scoring.CriterionDeadline, Weight: 3, Score: 10}},
		Decision: scoring.Decision{PercentScore: 78, Label: scoring.LabelGo},
	}
	tender.ApplyEvaluation(ev, at)

	require.NotNil(t, tender.GoNoGoScore)
	assert.Equal(t, 78, *tender.GoNoGoScore)
	assert.Equal(t, scoring.LabelGo, tender.Decision)
	assert.Len(t, tender.Criteria, 1)
	assert.Equal(t, at, *tender.EvaluatedAt)
}

func TestMemoryStoreCreateGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tender := NewTender("", sampleRecord(time.Now().Add(48*time.Hour)))
	require.NoError(t, s.CreateTender(ctx, tender))
	assert.NotEqual(t, uuid.Nil, tender.ID)
	assert.False(t, tender.CreatedAt.IsZero())

	got, err := s.GetTender(ctx, tender.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tender.Title, got.Title)

	// returned values are copies
	got.RequiredTechnologies[0] = "mutated"
	again, _ := s.GetTender(ctx, tender.ID)
	assert.Equal(t, "Cloud", again.RequiredTechnologies[0])

	missing, err := s.GetTender(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tender := NewTender("", sampleRecord(time.Now().Add(48*time.Hour)))
	require.NoError(t, s.CreateTender(ctx, tender))

	tender.Status = StatusEvaluation
	require.NoError(t, s.UpdateTender(ctx, tender))

	got, _ := s.GetTender(ctx, tender.ID)
	assert.Equal(t, StatusEvaluation, got.Status)

	err := s.UpdateTender(ctx, &Tender{ID: uuid.New()})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrTenderClosed))
}

func TestMemoryStoreClosedIsTerminal(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tender := NewTender("", sampleRecord(time.Now().Add(48*time.Hour)))
	require.NoError(t, s.CreateTender(ctx, tender))

	stale := *tender
	tender.Status = StatusClosed
	require.NoError(t, s.UpdateTender(ctx, tender))

	stale.Status = StatusEvaluation
	err := s.UpdateTender(ctx, &stale)
	assert.ErrorIs(t, err, ErrTenderClosed)

	err = s.UpdateTender(ctx, tender)
	assert.ErrorIs(t, err, ErrTenderClosed)

	got, _ := s.GetTender(ctx, tender.ID)
	assert.Equal(t, StatusClosed, got.Status)
}

func TestMemoryStoreListFilter(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		tender := NewTender("", sampleRecord(base.AddDate(0, 1, i)))
		if i%2 == 0 {
			tender.Status = StatusClosed
		}
		require.NoError(t, s.CreateTender(ctx, tender))
		ids = append(ids, tender.ID)
	}

	all, err := s.ListTenders(ctx, TenderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, ids[4], all[0].ID, "newest first")

	closed := StatusClosed
	onlyClosed, err := s.ListTenders(ctx, TenderFilter{Status: &closed})
	require.NoError(t, err)
	assert.Len(t, onlyClosed, 3)

	page, err := s.ListTenders(ctx, TenderFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[3], page[0].ID)

	empty, err := s.ListTenders(ctx, TenderFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreOpenTendersByDeadline(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)

	late := NewTender("late", sampleRecord(base.AddDate(0, 0, 20)))
	soon := NewTender("soon", sampleRecord(base.AddDate(0, 0, 2)))
	done := NewTender("done", sampleRecord(base))
	done.Status = StatusClosed
	evaluating := NewTender("evaluating", sampleRecord(base.AddDate(0, 0, 10)))
	evaluating.Status = StatusEvaluation

	for _, tender := range []*Tender{late, soon, done, evaluating} {
		require.NoError(t, s.CreateTender(ctx, tender))
	}

	open, err := s.GetOpenTenders(ctx)
	require.NoError(t, err)
	require.Len(t, open, 3)
	assert.Equal(t, "soon", open[0].Code)
	assert.Equal(t, "evaluating", open[1].Code)
	assert.Equal(t, "late", open[2].Code)
}
