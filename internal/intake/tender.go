// Package intake turns loosely-formed tender JSON (typed by hand, loaded from
// fixtures, or returned by a text-generation service) into a validated
// scoring.TenderRecord.
package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
)

// ErrMalformed is returned when the payload is not decodable JSON.
var ErrMalformed = errors.New("malformed tender payload")

// TenderPayload is the wire shape of a tender record.
type TenderPayload struct {
	Code                 string                  `json:"code,omitempty"`
	Title                string                  `json:"title"`
	Budget               *float64                `json:"budget"`
	Deadline             string                  `json:"deadline"`
	DurationMonths       int                     `json:"durationMonths"`
	RequiredTechnologies []string                `json:"requiredTechnologies"`
	RiskSummary          string                  `json:"riskSummary,omitempty"`
	SimilarTenders       []scoring.SimilarTender `json:"similarTenders,omitempty"`
}

var deadlineLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// DecodeTender parses data into a validated tender record.
func DecodeTender(data []byte) (*scoring.TenderRecord, error) {
	p, err := DecodePayload(data)
	if err != nil {
		return nil, err
	}
	return p.Record()
}

// DecodePayload parses data without validating field values.
func DecodePayload(data []byte) (*TenderPayload, error) {
	var p TenderPayload
	if err := json.Unmarshal(stripFences(data), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &p, nil
}

// Record converts the payload and validates it. A missing budget is treated as
// unknown, which the budget criterion scores as 0.
func (p TenderPayload) Record() (*scoring.TenderRecord, error) {
	deadline, err := ParseDeadline(p.Deadline)
	if err != nil {
		return nil, err
	}
	rec := &scoring.TenderRecord{
		Title:                strings.TrimSpace(p.Title),
		Deadline:             deadline,
		DurationMonths:       p.DurationMonths,
		RequiredTechnologies: NormalizeTechnologies(p.RequiredTechnologies),
		RiskSummary:          strings.TrimSpace(p.RiskSummary),
		SimilarTenders:       p.SimilarTenders,
	}
	if p.Budget != nil {
		rec.Budget = *p.Budget
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// ParseDeadline accepts an ISO-8601 date or an RFC 3339 timestamp. Dates
// without a zone are read as UTC midnight.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &scoring.ValidationError{Field: "deadline", Value: s, Reason: "is required"}
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &scoring.ValidationError{Field: "deadline", Value: s, Reason: "must be an ISO-8601 date"}
}

// NormalizeTechnologies trims names, drops blanks and removes duplicates
// ignoring case, keeping the first spelling seen.
func NormalizeTechnologies(techs []string) []string {
	seen := make(map[string]bool, len(techs))
	out := make([]string, 0, len(techs))
	for _, t := range techs {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// stripFences removes a surrounding markdown code fence, which generated JSON
// often carries.
func stripFences(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte("```")) {
		return trimmed
	}
	trimmed = bytes.TrimPrefix(trimmed, []byte("```"))
	if nl := bytes.IndexByte(trimmed, '\n'); nl >= 0 {
		trimmed = trimmed[nl+1:]
	}
	trimmed = bytes.TrimSpace(trimmed)
	trimmed = bytes.TrimSuffix(trimmed, []byte("```"))
	return bytes.TrimSpace(trimmed)
}
