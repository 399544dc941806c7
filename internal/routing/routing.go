// Package routing reshapes the canonical report payload into the document
// each regulatory destination expects. Shaping is pure: no storage access,
// no side effects.
package routing

import "strings"

// Payload is the canonical five-section report representation, as
// reconstituted from storage. Ransomware is nil when the section is absent.
type Payload struct {
	Reporter     map[string]interface{} `json:"reporter"`
	Organisation map[string]interface{} `json:"organisation"`
	Purpose      map[string]interface{} `json:"purpose"`
	Incident     map[string]interface{} `json:"incident"`
	Ransomware   map[string]interface{} `json:"ransomware"`
}

// Document is a destination-shaped export document.
type Document map[string]interface{}

// genericDestinations receive the whole payload under an uppercased label.
var genericDestinations = map[string]bool{
	"apra":     true,
	"asic":     true,
	"rba":      true,
	"tga":      true,
	"accc/cdr": true,
	"accc":     true,
	"cdr":      true,
}

// KnownDestinations lists the named agencies, in the order the dashboard
// presents them.
func KnownDestinations() []string {
	return []string{"ACSC", "HomeAffairs", "OAIC", "APRA", "ASIC", "RBA", "ACCC/CDR", "TGA"}
}

// ShapeForDestination maps a destination id to its document shape. The id is
// case and whitespace insensitive. Unknown ids are not an error: they fall
// through to a generic {destination, payload} document so new destinations
// can be wired without a shaping change.
func ShapeForDestination(dest string, p Payload) Document {
	dest = strings.ToLower(strings.TrimSpace(dest))
	switch {
	case dest == "acsc":
		return shapeACSC(p)
	case dest == "homeaffairs":
		return shapeHomeAffairs(p)
	case dest == "oaic":
		return shapeOAIC(p)
	case genericDestinations[dest]:
		return Document{"destination": strings.ToUpper(dest), "payload": p}
	}
	return Document{"destination": dest, "payload": p}
}

// pick copies the named keys, keeping a nil entry for any key the section
// does not carry.
func pick(section map[string]interface{}, keys ...string) map[string]interface{} {
	out := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		out[k] = section[k]
	}
	return out
}

func shapeACSC(p Payload) Document {
	return Document{
		"destination":  "ACSC",
		"reporter":     pick(p.Reporter, "first_name", "surname", "email", "phone"),
		"organisation": pick(p.Organisation, "name", "abn", "jurisdiction", "postcode", "country", "address"),
		"purpose":      p.Purpose,
		"incident":     p.Incident,
		"ransomware":   p.Ransomware,
	}
}

func shapeHomeAffairs(p Payload) Document {
	ciSectors := p.Purpose["ci_sectors"]
	if ciSectors == nil {
		ciSectors = []interface{}{}
	}
	return Document{
		"destination":          "Home Affairs",
		"ci_member":            p.Purpose["ci_member"],
		"ci_sectors":           ciSectors,
		"consent_home_affairs": p.Purpose["consent_home_affairs"],
		"reporter":             p.Reporter,
		"organisation":         p.Organisation,
		"incident":             p.Incident,
		"ransomware":           p.Ransomware,
	}
}

func shapeOAIC(p Payload) Document {
	return Document{
		"destination":        "OAIC",
		"organisation_name":  p.Organisation["name"],
		"jurisdiction":       p.Organisation["jurisdiction"],
		"incident_type":      p.Incident["type"],
		"occurrence_date":    p.Incident["occurrence_date"],
		"identified_date":    p.Incident["identified_date"],
		"narrative":          p.Incident["narrative"],
		"customers_impacted": p.Incident["customers_impacted"],
	}
}
