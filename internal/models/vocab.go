package models

// ABN status values for Organisation.ABNStatus
const (
	ABNStatusHasABN        = "has_abn"
	ABNStatusNotApplicable = "not_applicable"
)

// Purposes with conditional branches hanging off them
const (
	PurposeCybersecurityIncident = "Cybersecurity Incident"
	PurposeRansomwarePayment     = "Ransomware/Cyber Extortion Payment"
)

// Jurisdictions that require an extra organisation field
const (
	JurisdictionACT      = "ACT"
	JurisdictionOverseas = "Overseas"
)

// IncidentTypeOther requires Incident.OtherTypeText
const IncidentTypeOther = "Other"

// Jurisdictions lists the accepted state/territory values plus Overseas.
var Jurisdictions = []string{
	"ACT", "NSW", "NT", "QLD", "SA", "TAS", "VIC", "WA", "Overseas",
}

// Purposes is the fixed vocabulary of reporting purposes.
var Purposes = []string{
	"Cybersecurity Incident",
	"Data Breach Incident",
	"SSBA Incident",
	"CDR Info Incident",
	"Medical Device Incident",
	"Ransomware/Cyber Extortion Payment",
	"Information Security Incident",
	"Breach in Financial Stability Standards",
	"Incident Affecting Licensees",
}

// IncidentTypes is the fixed vocabulary of incident classifications.
var IncidentTypes = []string{
	"Denial of service (DoS/DDoS)",
	"Reconnaissance / scanning",
	"Unauthorised access",
	"Data exposure / theft / leak",
	"Malware",
	"Ransomware",
	"Phishing / social engineering",
	"Service outage",
	"Supply chain compromise",
	"Exploit of unpatched vulnerability",
	"Other",
}

// CISectors is the fixed vocabulary of critical infrastructure sectors.
var CISectors = []string{
	"Communications",
	"Financial Services",
	"Data Storage or Processing",
	"Defence",
	"Education",
	"Energy",
	"Food & Grocery",
	"Healthcare & Med",
	"Space",
	"Transport",
	"Water & Sewerage",
	"Other",
}

// CybersecurityReasons lists the reasons offered when the cybersecurity
// incident purpose is selected.
var CybersecurityReasons = []string{
	"Inform ACSC",
	"Request ACSC assistance",
}
