package hermes

import (
	"strings"
	"testing"
)

func TestTenderSubjects(t *testing.T) {
	id := "3f1c"
	tests := []struct {
		got  string
		want string
	}{
		{SubjectTenderCreated(id), "advisory.tender.3f1c.created"},
		{SubjectTenderEvaluated(id), "advisory.tender.3f1c.evaluated"},
		{SubjectDecisionChanged(id), "advisory.tender.3f1c.decision_changed"},
		{SubjectTenderClosed(id), "advisory.tender.3f1c.closed"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, tt.got)
		}
	}
}

func TestStreamCapturesEverySubject(t *testing.T) {
	id := "3f1c"
	subjects := []string{
		SubjectTenderCreated(id),
		SubjectTenderEvaluated(id),
		SubjectDecisionChanged(id),
		SubjectTenderClosed(id),
		SubjectSimulationProjected,
		SubjectTenderSubmit,
	}
	for _, subject := range subjects {
		captured := false
		for _, pattern := range StreamSubjects() {
			if strings.HasPrefix(subject, strings.TrimSuffix(pattern, ">")) {
				captured = true
			}
		}
		if !captured {
			t.Errorf("subject %s is not captured by stream %s", subject, StreamName)
		}
	}
}
