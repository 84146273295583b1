package usecases

import (
	"fmt"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
)

// EmergencyLocationMessage formats a shareable SOS text for a known location.
func EmergencyLocationMessage(loc domain.GeoPoint) string {
	mapsURL := fmt.Sprintf("https://www.google.com/maps?q=%f,%f", loc.Lat, loc.Lng)
	return fmt.Sprintf(`🆘 EMERGENCY at Kumbh Mela Nashik 2026

My Location:
Latitude: %.6f
Longitude: %.6f

Google Maps: %s

Please send help immediately!`, loc.Lat, loc.Lng, mapsURL)
}

// EmergencyLocationFallbackMessage is used when no location could be acquired.
func EmergencyLocationFallbackMessage() string {
	return `🆘 EMERGENCY at Kumbh Mela Nashik 2026

Location: Unable to determine (GPS error)

Please call back for location details.`
}
