package usecases

import (
	"strings"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
)

// Keyword lists for voice-transcript classification. Hindi and Marathi terms
// sit alongside English ones; matching is a plain substring scan.
var (
	fireKeywords = []string{
		"fire", "burning", "flames", "smoke",
		"आग", "जल रहा", "धुआं",
		"जळत", "धूर",
	}

	policeKeywords = []string{
		"police", "theft", "stolen", "robbery", "attack", "violence", "crime",
		"पुलिस", "चोरी", "लूट", "हमला", "अपराध",
		"पोलिस", "दरोडा", "हल्ला", "गुन्हा",
	}

	lostPersonKeywords = []string{
		"lost child", "missing", "can't find my", "cannot find my",
		"बच्चा खोया", "गुम",
		"मूल हरवले",
	}

	crowdKeywords = []string{
		"stampede", "crush", "too many people", "crowd",
		"भगदड़", "भीड़",
		"चेंगराचेंगरी", "गर्दी",
	}

	medicalKeywords = []string{
		"ambulance", "emergency", "help", "medical", "doctor", "hospital",
		"hurt", "injured", "bleeding", "heart attack", "stroke", "unconscious", "fainted",
		"मदद", "एम्बुलेंस", "आपातकालीन", "डॉक्टर", "अस्पताल", "चोट", "खून", "बेहोश", "दिल का दौरा",
		"मदत", "रुग्णवाहिका", "आणीबाणी", "दवाखाना", "जखम", "रक्त",
	}
)

// DetectEmergencyType scans a transcript for emergency keywords.
// Fire outranks police, police outranks lost-person and crowd, and medical is
// the broadest fallback, so the scan runs in that order.
func DetectEmergencyType(text string) (domain.EmergencyType, bool) {
	lower := strings.ToLower(text)

	for _, kw := range fireKeywords {
		if strings.Contains(lower, kw) {
			return domain.EmergencyFire, true
		}
	}
	for _, kw := range policeKeywords {
		if strings.Contains(lower, kw) {
			return domain.EmergencyPolice, true
		}
	}
	for _, kw := range lostPersonKeywords {
		if strings.Contains(lower, kw) {
			return domain.EmergencyLostPerson, true
		}
	}
	for _, kw := range crowdKeywords {
		if strings.Contains(lower, kw) {
			return domain.EmergencyCrowd, true
		}
	}
	for _, kw := range medicalKeywords {
		if strings.Contains(lower, kw) {
			return domain.EmergencyMedical, true
		}
	}

	return "", false
}

// DetectLanguage makes a coarse guess at the transcript language.
// Devanagari script maps to "hi"; everything else is tagged "en".
func DetectLanguage(text string) string {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return "hi"
		}
	}
	return "en"
}
