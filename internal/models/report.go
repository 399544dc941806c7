package models

import (
	"encoding/json"
	"fmt"
	"net/mail"
)

// Reporter is the contact officer for the report.
type Reporter struct {
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Title     string `json:"title,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Organisation describes the reporting organisation. ABN or ABNReason is
// required depending on ABNStatus; Postcode and Country are required for the
// ACT and Overseas jurisdictions respectively.
type Organisation struct {
	Name           string `json:"name"`
	ABNStatus      string `json:"abn_status"`
	ABN            string `json:"abn,omitempty"`
	ABNReason      string `json:"abn_reason,omitempty"`
	Jurisdiction   string `json:"jurisdiction"`
	Postcode       string `json:"postcode,omitempty"`
	Country        string `json:"country,omitempty"`
	Address        string `json:"address"`
	SecondaryEmail string `json:"secondary_email,omitempty"`
	Website        string `json:"website,omitempty"`
}

// Purpose carries the selected reporting purposes plus the cybersecurity
// sub-fields that activate when the cybersecurity incident purpose is chosen.
type Purpose struct {
	Purposes            []string `json:"purposes"`
	CybersecurityReason []string `json:"cybersecurity_reason,omitempty"`
	CIMember            string   `json:"ci_member,omitempty"`
	CISectors           []string `json:"ci_sectors,omitempty"`
	ConsentHomeAffairs  string   `json:"consent_home_affairs,omitempty"`
}

// Incident holds the incident discovery details and narrative.
type Incident struct {
	Type               string `json:"type"`
	OtherTypeText      string `json:"other_type_text,omitempty"`
	InfraImpacted      string `json:"infra_impacted"`
	InfraImpactDetails string `json:"infra_impact_details,omitempty"`
	CustomersImpacted  string `json:"customers_impacted"`
	OccurrenceDate     string `json:"occurrence_date"`
	OccurrenceTime     string `json:"occurrence_time"`
	IdentifiedDate     string `json:"identified_date"`
	IdentifiedTime     string `json:"identified_time"`
	Ongoing            string `json:"ongoing"`
	IdentifiedBy       string `json:"identified_by"`
	Narrative          string `json:"narrative"`
	AdditionalDetails  string `json:"additional_details,omitempty"`
}

// Ransomware is present only when the ransomware/extortion payment purpose
// is selected.
type Ransomware struct {
	Variants                 []string `json:"variants"`
	ExploitedVulns           string   `json:"exploited_vulns,omitempty"`
	PaymentDemanded          string   `json:"payment_demanded"`
	PaymentProvided          string   `json:"payment_provided,omitempty"`
	CommunicatedWithExtorter string   `json:"communicated_with_extorter"`
}

// Report is the canonical five-section aggregate. Ransomware is nil unless
// the ransomware purpose is selected.
type Report struct {
	Reporter     Reporter     `json:"reporter"`
	Organisation Organisation `json:"organisation"`
	Purpose      Purpose      `json:"purpose"`
	Incident     Incident     `json:"incident"`
	Ransomware   *Ransomware  `json:"ransomware,omitempty"`
}

// ValidationError reports a conditional-requiredness or format violation
// found while constructing a Report.
type ValidationError struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Section, e.Field, e.Message)
}

// NewReport validates the sections against the shared required-field rule
// table and assembles the aggregate. The first violation is returned as a
// *ValidationError. A ransomware record passed without the matching purpose
// is dropped rather than rejected, mirroring how the form only shows that
// section when the purpose is selected.
func NewReport(reporter Reporter, organisation Organisation, purpose Purpose, incident Incident, ransomware *Ransomware) (*Report, error) {
	report := &Report{
		Reporter:     reporter,
		Organisation: organisation,
		Purpose:      purpose,
		Incident:     incident,
		Ransomware:   ransomware,
	}

	state := report.FormState()
	if !state.HasPurpose(PurposeRansomwarePayment) {
		report.Ransomware = nil
		state.Ransomware = nil
	}

	for _, rule := range RequiredFields(state) {
		if !rule.Filled(state) {
			return nil, &ValidationError{Section: rule.Section, Field: rule.Field, Message: "required"}
		}
	}

	if _, err := mail.ParseAddress(reporter.Email); err != nil {
		return nil, &ValidationError{Section: SectionReporter, Field: "email", Message: "not a valid email address"}
	}

	return report, nil
}

// FormState returns the loose map view of the report, as consumed by the
// rule table and the destination router.
func (r *Report) FormState() FormState {
	var ransomware map[string]interface{}
	if r.Ransomware != nil {
		ransomware = sectionMap(r.Ransomware)
	}
	return FormState{
		Reporter:     sectionMap(r.Reporter),
		Organisation: sectionMap(r.Organisation),
		Purpose:      sectionMap(r.Purpose),
		Incident:     sectionMap(r.Incident),
		Ransomware:   ransomware,
	}
}

// sectionMap converts a typed section record into the field-name keyed map
// the rule table and storage layer work with.
func sectionMap(v interface{}) map[string]interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}
