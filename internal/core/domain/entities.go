package domain

import (
	"time"
)

// FacilityCategory is the closed set of point-of-interest categories.
type FacilityCategory string

const (
	CategoryToilet    FacilityCategory = "toilet"
	CategoryWater     FacilityCategory = "water"
	CategoryFood      FacilityCategory = "food"
	CategoryMedical   FacilityCategory = "medical"
	CategoryTemple    FacilityCategory = "temple"
	CategoryGhat      FacilityCategory = "ghat"
	CategoryParking   FacilityCategory = "parking"
	CategoryHelpdesk  FacilityCategory = "helpdesk"
	CategoryLostFound FacilityCategory = "lostfound"
)

// FacilityCategories lists every valid category.
var FacilityCategories = []FacilityCategory{
	CategoryToilet, CategoryWater, CategoryFood, CategoryMedical,
	CategoryTemple, CategoryGhat, CategoryParking, CategoryHelpdesk,
	CategoryLostFound,
}

// Valid reports whether c is a known category.
func (c FacilityCategory) Valid() bool {
	for _, known := range FacilityCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Facility represents a fixed point of interest on the mela grounds.
// Facilities are created once at process start and never mutated.
type Facility struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	NameLocal   string           `json:"name_local,omitempty"`
	Category    FacilityCategory `json:"category"`
	Location    GeoPoint         `json:"location"`
	Description string           `json:"description,omitempty"`
	Distance    *float64         `json:"distance,omitempty"` // meters, computed field
}

// EmergencyType classifies a reported incident.
type EmergencyType string

const (
	EmergencyMedical    EmergencyType = "Medical"
	EmergencyFire       EmergencyType = "Fire"
	EmergencyPolice     EmergencyType = "Police"
	EmergencyCrowd      EmergencyType = "Crowd"
	EmergencyLostPerson EmergencyType = "LostPerson"
)

// Valid reports whether t is a known emergency type.
func (t EmergencyType) Valid() bool {
	switch t {
	case EmergencyMedical, EmergencyFire, EmergencyPolice, EmergencyCrowd, EmergencyLostPerson:
		return true
	}
	return false
}

// Timeline records ISO timestamps for case lifecycle milestones.
type Timeline struct {
	VoiceTrigger string `json:"voice_trigger"`
	Classified   string `json:"classified"`
	Dispatched   string `json:"dispatched,omitempty"`
	Acknowledged string `json:"acknowledged,omitempty"`
	Resolved     string `json:"resolved,omitempty"`
}

// CaseMetrics holds per-case latency measurements in seconds.
type CaseMetrics struct {
	DetectionTime  int `json:"detection_time"`
	DispatchTime   int `json:"dispatch_time,omitempty"`
	ResponseTime   int `json:"response_time,omitempty"`
	ResolutionTime int `json:"resolution_time,omitempty"`
}

// EmergencyCase is a reported incident tracked through a status lifecycle.
// Version increases monotonically on every mutation and is used to reject
// stale updates arriving over the relay.
type EmergencyCase struct {
	ID                string        `json:"id"`
	Type              EmergencyType `json:"type"`
	Zone              string        `json:"zone"`
	Timestamp         time.Time     `json:"timestamp"`
	Status            CaseStatus    `json:"status"`
	Location          GeoPoint      `json:"coordinates"`
	Language          string        `json:"language"`
	TranscriptSnippet string        `json:"transcript_snippet,omitempty"`
	Timeline          Timeline      `json:"timeline"`
	Metrics           CaseMetrics   `json:"metrics"`
	Version           int64         `json:"version"`
}

// EmergencyContact is a phone contact for a category of emergency.
type EmergencyContact struct {
	Name      string `json:"name"`
	NameLocal string `json:"name_local"`
	Number    string `json:"number"`
	Type      string `json:"type"`
}

// EmergencyContacts is the fixed contact directory for the mela.
var EmergencyContacts = []EmergencyContact{
	{Name: "Ambulance", NameLocal: "एम्बुलेंस", Number: "108", Type: "ambulance"},
	{Name: "Police", NameLocal: "पुलिस", Number: "100", Type: "police"},
	{Name: "Fire", NameLocal: "अग्निशामक", Number: "101", Type: "fire"},
	{Name: "Kumbh Control Room", NameLocal: "कुंभ कंट्रोल रूम", Number: "1800-233-4444", Type: "helpdesk"},
	{Name: "Women Helpline", NameLocal: "महिला हेल्पलाइन", Number: "1091", Type: "helpdesk"},
}

// ContactByType returns the first contact of the given type, or nil.
func ContactByType(contactType string) *EmergencyContact {
	for i := range EmergencyContacts {
		if EmergencyContacts[i].Type == contactType {
			return &EmergencyContacts[i]
		}
	}
	return nil
}
