package hermes

const (
	SubjectSimulationProjected = "advisory.simulation.projected"

	// SubjectTenderSubmit receives tender JSON from upstream extractors.
	SubjectTenderSubmit = "advisory.intake.tender"

	StreamName   = "ADVISORY_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

// StreamSubjects lists the subjects captured by the ADVISORY_EVENTS stream.
func StreamSubjects() []string {
	return []string{"advisory.tender.>", "advisory.simulation.>", "advisory.intake.>"}
}

// Tender lifecycle subjects
func SubjectTenderCreated(tenderID string) string { return "advisory.tender." + tenderID + ".created" }
func SubjectTenderEvaluated(tenderID string) string {
	return "advisory.tender." + tenderID + ".evaluated"
}
func SubjectDecisionChanged(tenderID string) string {
	return "advisory.tender." + tenderID + ".decision_changed"
}
func SubjectTenderClosed(tenderID string) string { return "advisory.tender." + tenderID + ".closed" }
