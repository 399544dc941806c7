package models

// CompletionPercent computes how much of the form is complete, as an integer
// percentage 0..100. The denominator is data-dependent: conditional branches
// (ABN status, jurisdiction, selected purposes, incident type) add required
// fields as they activate. Pure function of the current state; recomputed on
// every form change, never persisted.
func CompletionPercent(reporter, organisation, purpose, incident, ransomware map[string]interface{}) int {
	state := FormState{
		Reporter:     reporter,
		Organisation: organisation,
		Purpose:      purpose,
		Incident:     incident,
		Ransomware:   ransomware,
	}

	required := 0
	filled := 0
	for _, rule := range RequiredFields(state) {
		required++
		if rule.Filled(state) {
			filled++
		}
	}

	// The rule table guarantees required > 0, but guard the division anyway.
	if required == 0 {
		return 0
	}
	return 100 * filled / required
}
