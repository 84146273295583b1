// Package catalog holds the static facility dataset for Nashik Kumbh Mela 2026.
// The data is compiled in; it can be swapped for official data when available.
package catalog

import (
	"github.com/kumbhsarthi/sarthi/internal/core/domain"
)

var facilities = []domain.Facility{
	// Ghats
	{ID: "ramkund", Name: "Ramkund", NameLocal: "रामकुंड", Category: domain.CategoryGhat, Location: domain.GeoPoint{Lat: 19.9975, Lng: 73.7898}, Description: "Most sacred ghat - Lord Rama bathed here"},
	{ID: "tapovan", Name: "Tapovan", NameLocal: "तपोवन", Category: domain.CategoryGhat, Location: domain.GeoPoint{Lat: 20.0012, Lng: 73.7945}, Description: "Ancient meditation site"},
	{ID: "panchavati", Name: "Panchavati Ghat", NameLocal: "पंचवटी घाट", Category: domain.CategoryGhat, Location: domain.GeoPoint{Lat: 19.9989, Lng: 73.7912}, Description: "Where Lord Rama lived during exile"},

	// Temples
	{ID: "kalaram", Name: "Kalaram Temple", NameLocal: "काळाराम मंदिर", Category: domain.CategoryTemple, Location: domain.GeoPoint{Lat: 19.9982, Lng: 73.7901}, Description: "Famous temple with black stone idol of Lord Rama"},
	{ID: "sundar-narayan", Name: "Sundar Narayan Temple", NameLocal: "सुंदर नारायण मंदिर", Category: domain.CategoryTemple, Location: domain.GeoPoint{Lat: 19.9970, Lng: 73.7888}, Description: "Ancient Vishnu temple"},
	{ID: "trimbakeshwar", Name: "Trimbakeshwar", NameLocal: "त्र्यंबकेश्वर", Category: domain.CategoryTemple, Location: domain.GeoPoint{Lat: 19.9322, Lng: 73.5305}, Description: "One of the 12 Jyotirlingas"},

	// Medical
	{ID: "med-1", Name: "Main Medical Camp", NameLocal: "मुख्य चिकित्सा शिविर", Category: domain.CategoryMedical, Location: domain.GeoPoint{Lat: 19.9965, Lng: 73.7910}, Description: "24/7 emergency services"},
	{ID: "med-2", Name: "First Aid - Ramkund", NameLocal: "प्राथमिक चिकित्सा - रामकुंड", Category: domain.CategoryMedical, Location: domain.GeoPoint{Lat: 19.9978, Lng: 73.7895}, Description: "First aid and minor treatments"},
	{ID: "med-3", Name: "First Aid - Tapovan", NameLocal: "प्राथमिक चिकित्सा - तपोवन", Category: domain.CategoryMedical, Location: domain.GeoPoint{Lat: 20.0018, Lng: 73.7938}, Description: "First aid station"},

	// Water points
	{ID: "water-1", Name: "Water Station 1", NameLocal: "पानी केंद्र 1", Category: domain.CategoryWater, Location: domain.GeoPoint{Lat: 19.9972, Lng: 73.7902}, Description: "Clean drinking water"},
	{ID: "water-2", Name: "Water Station 2", NameLocal: "पानी केंद्र 2", Category: domain.CategoryWater, Location: domain.GeoPoint{Lat: 19.9985, Lng: 73.7920}, Description: "RO purified water"},
	{ID: "water-3", Name: "Water Station 3", NameLocal: "पानी केंद्र 3", Category: domain.CategoryWater, Location: domain.GeoPoint{Lat: 20.0005, Lng: 73.7935}, Description: "Free drinking water"},

	// Toilets
	{ID: "toilet-1", Name: "Public Toilet Block A", NameLocal: "सार्वजनिक शौचालय A", Category: domain.CategoryToilet, Location: domain.GeoPoint{Lat: 19.9968, Lng: 73.7905}, Description: "Clean public toilets"},
	{ID: "toilet-2", Name: "Public Toilet Block B", NameLocal: "सार्वजनिक शौचालय B", Category: domain.CategoryToilet, Location: domain.GeoPoint{Lat: 19.9990, Lng: 73.7925}, Description: "Public toilets with accessibility"},
	{ID: "toilet-3", Name: "Public Toilet Block C", NameLocal: "सार्वजनिक शौचालय C", Category: domain.CategoryToilet, Location: domain.GeoPoint{Lat: 20.0010, Lng: 73.7940}, Description: "Public toilets"},

	// Food
	{ID: "food-1", Name: "Annakshetra (Free Food)", NameLocal: "अन्नक्षेत्र", Category: domain.CategoryFood, Location: domain.GeoPoint{Lat: 19.9960, Lng: 73.7915}, Description: "Free vegetarian food for devotees"},
	{ID: "food-2", Name: "Food Stalls Area", NameLocal: "भोजन स्टॉल", Category: domain.CategoryFood, Location: domain.GeoPoint{Lat: 19.9980, Lng: 73.7930}, Description: "Various food vendors"},

	// Parking
	{ID: "park-1", Name: "Main Parking Zone 1", NameLocal: "मुख्य पार्किंग 1", Category: domain.CategoryParking, Location: domain.GeoPoint{Lat: 19.9940, Lng: 73.7850}, Description: "Large vehicle parking"},
	{ID: "park-2", Name: "Parking Zone 2", NameLocal: "पार्किंग 2", Category: domain.CategoryParking, Location: domain.GeoPoint{Lat: 20.0030, Lng: 73.7960}, Description: "Two-wheeler and car parking"},

	// Help desks
	{ID: "help-1", Name: "Main Help Desk", NameLocal: "मुख्य सहायता केंद्र", Category: domain.CategoryHelpdesk, Location: domain.GeoPoint{Lat: 19.9975, Lng: 73.7898}, Description: "Information and assistance"},
	{ID: "help-2", Name: "Police Help Post", NameLocal: "पुलिस सहायता", Category: domain.CategoryHelpdesk, Location: domain.GeoPoint{Lat: 19.9970, Lng: 73.7890}, Description: "Police assistance and complaints"},

	// Lost & found
	{ID: "lf-1", Name: "Lost & Found Center", NameLocal: "खोया-पाया केंद्र", Category: domain.CategoryLostFound, Location: domain.GeoPoint{Lat: 19.9973, Lng: 73.7896}, Description: "Lost persons and belongings"},
}

// Zones are the operational zone labels used by the control room.
var Zones = []string{"Ramkund", "Panchavati", "Tapovan", "Nashik Road", "Dwarka"}

// zoneAnchors map zone labels to representative coordinates.
var zoneAnchors = map[string]domain.GeoPoint{
	"Ramkund":     {Lat: 19.9975, Lng: 73.7898},
	"Panchavati":  {Lat: 19.9989, Lng: 73.7912},
	"Tapovan":     {Lat: 20.0012, Lng: 73.7945},
	"Nashik Road": {Lat: 19.9553, Lng: 73.8380},
	"Dwarka":      {Lat: 19.9910, Lng: 73.8010},
}

// Catalog implements ports.FacilityCatalog over the compiled-in dataset.
type Catalog struct {
	byID map[string]int
}

// New builds the catalog index.
func New() *Catalog {
	byID := make(map[string]int, len(facilities))
	for i, f := range facilities {
		byID[f.ID] = i
	}
	return &Catalog{byID: byID}
}

// All returns every facility in insertion order.
func (c *Catalog) All() []domain.Facility {
	out := make([]domain.Facility, len(facilities))
	copy(out, facilities)
	return out
}

// ByCategory returns facilities of one category, insertion order preserved.
func (c *Catalog) ByCategory(category domain.FacilityCategory) []domain.Facility {
	var out []domain.Facility
	for _, f := range facilities {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// GetByID returns a copy of the facility with the given id.
func (c *Catalog) GetByID(id string) (*domain.Facility, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	f := facilities[i]
	return &f, true
}

// ZoneAnchor returns the representative coordinate of a zone label.
func ZoneAnchor(zone string) (domain.GeoPoint, bool) {
	p, ok := zoneAnchors[zone]
	return p, ok
}

// ZoneAnchors returns a copy of the zone anchor map.
func ZoneAnchors() map[string]domain.GeoPoint {
	out := make(map[string]domain.GeoPoint, len(zoneAnchors))
	for k, v := range zoneAnchors {
		out[k] = v
	}
	return out
}
