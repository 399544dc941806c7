package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReporter() Reporter {
	return Reporter{
		FirstName: "Dana",
		Surname:   "Wirth",
		Email:     "dana.wirth@example.com",
		Phone:     "+61 2 5550 1234",
	}
}

func validOrganisation() Organisation {
	return Organisation{
		Name:         "Wirth Logistics Pty Ltd",
		ABNStatus:    ABNStatusHasABN,
		ABN:          "11 222 333 444",
		Jurisdiction: "NSW",
		Address:      "10 Harbour St, Sydney",
	}
}

func validPurpose() Purpose {
	return Purpose{Purposes: []string{"Data Breach Incident"}}
}

func validIncident() Incident {
	return Incident{
		Type:              "Malware",
		InfraImpacted:     "No",
		CustomersImpacted: "Unknown",
		OccurrenceDate:    "2025-06-01",
		OccurrenceTime:    "09:30:00",
		IdentifiedDate:    "2025-06-02",
		IdentifiedTime:    "14:00:00",
		Ongoing:           "No",
		IdentifiedBy:      "Organisation",
		Narrative:         "Workstation beaconing to a known C2 domain.",
	}
}

func TestNewReportValid(t *testing.T) {
	rpt, err := NewReport(validReporter(), validOrganisation(), validPurpose(), validIncident(), nil)
	require.NoError(t, err)
	assert.Nil(t, rpt.Ransomware)
	assert.Equal(t, "Dana", rpt.Reporter.FirstName)
}

func TestNewReportMissingRequiredField(t *testing.T) {
	reporter := validReporter()
	reporter.Phone = "   "

	_, err := NewReport(reporter, validOrganisation(), validPurpose(), validIncident(), nil)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, SectionReporter, verr.Section)
	assert.Equal(t, "phone", verr.Field)
}

func TestNewReportInvalidEmail(t *testing.T) {
	reporter := validReporter()
	reporter.Email = "not-an-address"

	_, err := NewReport(reporter, validOrganisation(), validPurpose(), validIncident(), nil)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "email", verr.Field)
}

func TestNewReportABNReasonBranch(t *testing.T) {
	org := validOrganisation()
	org.ABNStatus = ABNStatusNotApplicable
	org.ABN = ""

	_, err := NewReport(validReporter(), org, validPurpose(), validIncident(), nil)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "abn_reason", verr.Field)

	org.ABNReason = "Foreign entity without an ABN"
	_, err = NewReport(validReporter(), org, validPurpose(), validIncident(), nil)
	assert.NoError(t, err)
}

func TestNewReportOverseasRequiresCountry(t *testing.T) {
	org := validOrganisation()
	org.Jurisdiction = "Overseas"

	_, err := NewReport(validReporter(), org, validPurpose(), validIncident(), nil)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "country", verr.Field)
}

func TestNewReportRansomwareRequired(t *testing.T) {
	purpose := Purpose{Purposes: []string{PurposeRansomwarePayment}}

	_, err := NewReport(validReporter(), validOrganisation(), purpose, validIncident(), nil)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, SectionRansomware, verr.Section)
	assert.Equal(t, "payment_demanded", verr.Field)

	ransomware := &Ransomware{
		PaymentDemanded:          "BTC",
		CommunicatedWithExtorter: "No",
	}
	rpt, err := NewReport(validReporter(), validOrganisation(), purpose, validIncident(), ransomware)
	require.NoError(t, err)
	require.NotNil(t, rpt.Ransomware)
	assert.Equal(t, "BTC", rpt.Ransomware.PaymentDemanded)
}

func TestNewReportDropsUnselectedRansomware(t *testing.T) {
	ransomware := &Ransomware{PaymentDemanded: "BTC", CommunicatedWithExtorter: "No"}

	rpt, err := NewReport(validReporter(), validOrganisation(), validPurpose(), validIncident(), ransomware)
	require.NoError(t, err)
	assert.Nil(t, rpt.Ransomware, "ransomware section without the matching purpose is dropped")
}

func TestNewReportCybersecurityBranch(t *testing.T) {
	purpose := Purpose{
		Purposes: []string{PurposeCybersecurityIncident},
		CIMember: "Yes",
	}

	_, err := NewReport(validReporter(), validOrganisation(), purpose, validIncident(), nil)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, SectionPurpose, verr.Section)

	purpose.ConsentHomeAffairs = "Yes"
	purpose.CISectors = []string{"Energy"}
	_, err = NewReport(validReporter(), validOrganisation(), purpose, validIncident(), nil)
	assert.NoError(t, err)
}

func TestFormStateRoundTrip(t *testing.T) {
	rpt, err := NewReport(validReporter(), validOrganisation(), validPurpose(), validIncident(), nil)
	require.NoError(t, err)

	state := rpt.FormState()
	assert.Equal(t, "dana.wirth@example.com", state.Reporter["email"])
	assert.Equal(t, "NSW", state.Organisation["jurisdiction"])
	assert.Nil(t, state.Ransomware)
	assert.True(t, state.HasPurpose("Data Breach Incident"))
	assert.False(t, state.HasPurpose(PurposeRansomwarePayment))
}
