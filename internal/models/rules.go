package models

import "strings"

// FormState is the loose, section-keyed view of a report as the form layer
// builds it: five maps of field name to value, where values are whatever
// JSON decoding produced (strings, lists, nil). Partial states are normal;
// drafts are stored in exactly this shape.
type FormState struct {
	Reporter     map[string]interface{}
	Organisation map[string]interface{}
	Purpose      map[string]interface{}
	Incident     map[string]interface{}
	Ransomware   map[string]interface{}
}

// Section names, as used in storage columns and validation errors.
const (
	SectionReporter     = "reporter"
	SectionOrganisation = "organisation"
	SectionPurpose      = "purpose"
	SectionIncident     = "incident"
	SectionRansomware   = "ransomware"
)

// RequiredRule declares a single conditionally required field: the field is
// required whenever When returns true for the current form state. A nil When
// means always required. The completion estimator and report validation both
// consume the same table, so the conditional logic lives in one place.
type RequiredRule struct {
	Section string
	Field   string
	When    func(FormState) bool
}

var requiredRules = []RequiredRule{
	{Section: SectionReporter, Field: "first_name"},
	{Section: SectionReporter, Field: "surname"},
	{Section: SectionReporter, Field: "email"},
	{Section: SectionReporter, Field: "phone"},

	{Section: SectionOrganisation, Field: "name"},
	{Section: SectionOrganisation, Field: "jurisdiction"},
	{Section: SectionOrganisation, Field: "address"},
	{Section: SectionOrganisation, Field: "abn", When: func(s FormState) bool {
		return fieldString(s.Organisation, "abn_status") == ABNStatusHasABN
	}},
	{Section: SectionOrganisation, Field: "abn_reason", When: func(s FormState) bool {
		return fieldString(s.Organisation, "abn_status") != ABNStatusHasABN
	}},
	{Section: SectionOrganisation, Field: "postcode", When: func(s FormState) bool {
		return fieldString(s.Organisation, "jurisdiction") == JurisdictionACT
	}},
	{Section: SectionOrganisation, Field: "country", When: func(s FormState) bool {
		return fieldString(s.Organisation, "jurisdiction") == JurisdictionOverseas
	}},

	{Section: SectionPurpose, Field: "purposes"},
	{Section: SectionPurpose, Field: "ci_member", When: cybersecuritySelected},
	{Section: SectionPurpose, Field: "consent_home_affairs", When: cybersecuritySelected},
	{Section: SectionPurpose, Field: "ci_sectors", When: func(s FormState) bool {
		return cybersecuritySelected(s) && fieldString(s.Purpose, "ci_member") == "Yes"
	}},

	{Section: SectionIncident, Field: "type"},
	{Section: SectionIncident, Field: "infra_impacted"},
	{Section: SectionIncident, Field: "customers_impacted"},
	{Section: SectionIncident, Field: "occurrence_date"},
	{Section: SectionIncident, Field: "occurrence_time"},
	{Section: SectionIncident, Field: "identified_date"},
	{Section: SectionIncident, Field: "identified_time"},
	{Section: SectionIncident, Field: "ongoing"},
	{Section: SectionIncident, Field: "identified_by"},
	{Section: SectionIncident, Field: "narrative"},
	{Section: SectionIncident, Field: "other_type_text", When: func(s FormState) bool {
		return fieldString(s.Incident, "type") == IncidentTypeOther
	}},
	{Section: SectionIncident, Field: "infra_impact_details", When: func(s FormState) bool {
		return fieldString(s.Incident, "infra_impacted") == "Yes"
	}},

	{Section: SectionRansomware, Field: "payment_demanded", When: ransomwareSelected},
	{Section: SectionRansomware, Field: "communicated_with_extorter", When: ransomwareSelected},
}

// RequiredFields evaluates the rule table against the given state and
// returns the active rules in declaration order.
func RequiredFields(s FormState) []RequiredRule {
	var active []RequiredRule
	for _, r := range requiredRules {
		if r.When == nil || r.When(s) {
			active = append(active, r)
		}
	}
	return active
}

// Filled reports whether the rule's field carries a usable value in the state.
func (r RequiredRule) Filled(s FormState) bool {
	return truthy(s.section(r.Section)[r.Field])
}

func (s FormState) section(name string) map[string]interface{} {
	switch name {
	case SectionReporter:
		return s.Reporter
	case SectionOrganisation:
		return s.Organisation
	case SectionPurpose:
		return s.Purpose
	case SectionIncident:
		return s.Incident
	case SectionRansomware:
		return s.Ransomware
	}
	return nil
}

// HasPurpose reports whether the given purpose tag is selected in the state.
func (s FormState) HasPurpose(purpose string) bool {
	switch list := s.Purpose["purposes"].(type) {
	case []interface{}:
		for _, v := range list {
			if str, ok := v.(string); ok && str == purpose {
				return true
			}
		}
	case []string:
		for _, v := range list {
			if v == purpose {
				return true
			}
		}
	}
	return false
}

func cybersecuritySelected(s FormState) bool {
	return s.HasPurpose(PurposeCybersecurityIncident)
}

func ransomwareSelected(s FormState) bool {
	return s.HasPurpose(PurposeRansomwarePayment)
}

func fieldString(section map[string]interface{}, field string) string {
	v, _ := section[field].(string)
	return v
}

// truthy mirrors the form layer's notion of "filled": non-empty trimmed
// string, non-empty list, or any other non-nil value.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []interface{}:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case bool:
		return t
	default:
		return true
	}
}
