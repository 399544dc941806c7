package routing

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() Payload {
	return Payload{
		Reporter: map[string]interface{}{
			"first_name": "Dana",
			"surname":    "Wirth",
			"title":      "CISO",
			"email":      "dana.wirth@example.com",
			"phone":      "+61 2 5550 1234",
		},
		Organisation: map[string]interface{}{
			"name":            "Wirth Logistics Pty Ltd",
			"abn_status":      "has_abn",
			"abn":             "11 222 333 444",
			"jurisdiction":    "NSW",
			"address":         "10 Harbour St, Sydney",
			"secondary_email": "security@example.com",
			"website":         "https://example.com",
		},
		Purpose: map[string]interface{}{
			"purposes":             []interface{}{"Cybersecurity Incident"},
			"ci_member":            "Yes",
			"ci_sectors":           []interface{}{"Transport"},
			"consent_home_affairs": "Yes",
		},
		Incident: map[string]interface{}{
			"type":               "Malware",
			"infra_impacted":     "No",
			"customers_impacted": "Unknown",
			"occurrence_date":    "2025-06-01",
			"identified_date":    "2025-06-02",
			"narrative":          "Workstation beaconing to a known C2 domain.",
		},
		Ransomware: nil,
	}
}

func TestShapeACSC(t *testing.T) {
	doc := ShapeForDestination("ACSC", samplePayload())

	assert.Equal(t, "ACSC", doc["destination"])

	reporter, ok := doc["reporter"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Dana", reporter["first_name"])
	assert.NotContains(t, reporter, "title", "reporter is reduced to four fields")
	assert.Len(t, reporter, 4)

	organisation, ok := doc["organisation"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, organisation, 6)
	assert.NotContains(t, organisation, "secondary_email")
	assert.Nil(t, organisation["postcode"], "absent fields stay as explicit nulls")

	assert.Equal(t, samplePayload().Purpose, doc["purpose"], "purpose passes through unmodified")
	assert.Equal(t, samplePayload().Incident, doc["incident"], "incident passes through unmodified")
	assert.Nil(t, doc["ransomware"])
}

func TestShapeHomeAffairs(t *testing.T) {
	doc := ShapeForDestination("HomeAffairs", samplePayload())

	assert.Equal(t, "Home Affairs", doc["destination"])
	assert.Equal(t, "Yes", doc["ci_member"])
	assert.Equal(t, []interface{}{"Transport"}, doc["ci_sectors"])
	assert.Equal(t, "Yes", doc["consent_home_affairs"])
	assert.Equal(t, samplePayload().Reporter, doc["reporter"])
	assert.Equal(t, samplePayload().Organisation, doc["organisation"])
}

func TestShapeHomeAffairsDefaultsCISectors(t *testing.T) {
	p := samplePayload()
	delete(p.Purpose, "ci_sectors")

	doc := ShapeForDestination("homeaffairs", p)
	assert.Equal(t, []interface{}{}, doc["ci_sectors"], "missing ci_sectors defaults to an empty list")
}

func TestShapeOAIC(t *testing.T) {
	doc := ShapeForDestination("OAIC", samplePayload())

	want := Document{
		"destination":        "OAIC",
		"organisation_name":  "Wirth Logistics Pty Ltd",
		"jurisdiction":       "NSW",
		"incident_type":      "Malware",
		"occurrence_date":    "2025-06-01",
		"identified_date":    "2025-06-02",
		"narrative":          "Workstation beaconing to a known C2 domain.",
		"customers_impacted": "Unknown",
	}
	assert.Equal(t, want, doc, "OAIC gets exactly its seven keys, nothing else")
	assert.NotContains(t, doc, "reporter")
	assert.NotContains(t, doc, "purpose")
	assert.NotContains(t, doc, "ransomware")
}

func TestShapeGenericDestinations(t *testing.T) {
	for _, dest := range []string{"apra", "asic", "rba", "tga", "accc/cdr", "accc", "cdr"} {
		doc := ShapeForDestination(dest, samplePayload())
		assert.Equal(t, strings.ToUpper(dest), doc["destination"], "generic destinations are uppercased")
		assert.Equal(t, samplePayload(), doc["payload"], "payload passes through whole")
		assert.Len(t, doc, 2)
	}
}

func TestShapeCaseAndWhitespaceInsensitive(t *testing.T) {
	p := samplePayload()
	assert.Equal(t, ShapeForDestination("oaic", p), ShapeForDestination("  OAIC  ", p))
	assert.Equal(t, ShapeForDestination("acsc", p), ShapeForDestination("AcSc", p))
}

// Unknown ids deliberately fall through to the generic shape instead of
// erroring; this test pins that open design point.
func TestShapeUnknownDestinationFallback(t *testing.T) {
	p := samplePayload()
	doc := ShapeForDestination("Unknown-Agency", p)

	assert.Equal(t, "unknown-agency", doc["destination"])
	assert.Equal(t, p, doc["payload"], "payload passes through untouched")

	// Round-trip: the original payload is recoverable from the document.
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded struct {
		Destination string  `json:"destination"`
		Payload     Payload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	original, err := json.Marshal(p)
	require.NoError(t, err)
	recovered, err := json.Marshal(decoded.Payload)
	require.NoError(t, err)
	assert.JSONEq(t, string(original), string(recovered))
}
