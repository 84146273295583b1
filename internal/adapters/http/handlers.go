package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
	"github.com/kumbhsarthi/sarthi/internal/core/usecases"
	"github.com/kumbhsarthi/sarthi/internal/pkg/metrics"
)

// ListFacilitiesHandler returns the facility catalog, optionally filtered
// by category.
func ListFacilitiesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := domain.FacilityCategory(c.Query("category"))
		if category != "" && !category.Valid() {
			return errBadRequest(c, "unknown category: "+string(category))
		}

		var facilities []domain.Facility
		if category != "" {
			facilities = deps.Facilities.ByCategory(c.Context(), category)
		} else {
			facilities = deps.Facilities.All(c.Context())
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		page, pg := paginate(facilities, offset, limit)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// NearbyFacilitiesHandler returns facilities within a radius of a point,
// sorted by distance.
func NearbyFacilitiesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lng := c.QueryFloat("lng", 0)
		radius := c.QueryFloat("radius", 0)
		category := domain.FacilityCategory(c.Query("category"))

		if c.Query("lat") == "" || c.Query("lng") == "" {
			return errBadRequest(c, "lat and lng are required")
		}
		if category != "" && !category.Valid() {
			return errBadRequest(c, "unknown category: "+string(category))
		}
		if radius < 0 || radius > 50000 {
			return errBadRequest(c, "radius must be between 0 and 50000 meters")
		}

		facilities, err := deps.Facilities.FindNearby(c.Context(), domain.GeoPoint{Lat: lat, Lng: lng}, category, radius)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCoordinate) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}

		label := string(category)
		if label == "" {
			label = "all"
		}
		metrics.FacilityQueries.WithLabelValues(label).Inc()

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(facilities)
	}
}

// NearestFacilityHandler returns the single closest facility of a category,
// unbounded by radius.
func NearestFacilityHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lng := c.QueryFloat("lng", 0)
		category := domain.FacilityCategory(c.Query("category"))

		if c.Query("lat") == "" || c.Query("lng") == "" {
			return errBadRequest(c, "lat and lng are required")
		}
		if category == "" || !category.Valid() {
			return errBadRequest(c, "a valid category is required")
		}

		f, err := deps.Facilities.Nearest(c.Context(), domain.GeoPoint{Lat: lat, Lng: lng}, category)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCoordinate) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		if f == nil {
			return errNotFound(c, "no facility of category "+string(category))
		}
		return c.JSON(f)
	}
}

// GetFacilityHandler returns a single facility by ID.
func GetFacilityHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "facility id is required")
		}
		f := deps.Facilities.GetByID(c.Context(), id)
		if f == nil {
			return errNotFound(c, "facility not found")
		}
		return c.JSON(f)
	}
}

// DirectionsHandler renders a textual direction hint from a point to a facility.
func DirectionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lng := c.QueryFloat("lng", 0)
		facilityID := c.Query("facility_id")

		if c.Query("lat") == "" || c.Query("lng") == "" {
			return errBadRequest(c, "lat and lng are required")
		}
		if facilityID == "" {
			return errBadRequest(c, "facility_id is required")
		}

		text, err := deps.Facilities.Directions(c.Context(), domain.GeoPoint{Lat: lat, Lng: lng}, facilityID)
		if err != nil {
			if errors.Is(err, domain.ErrFacilityNotFound) {
				return errNotFound(c, "facility not found")
			}
			if errors.Is(err, domain.ErrInvalidCoordinate) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"facility_id": facilityID, "directions": text})
	}
}

// NavigationHandler builds an external-map hand-off URL for a facility.
func NavigationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		facilityID := c.Query("facility_id")
		platform := c.Query("platform", "web")

		if facilityID == "" {
			return errBadRequest(c, "facility_id is required")
		}
		f := deps.Facilities.GetByID(c.Context(), facilityID)
		if f == nil {
			return errNotFound(c, "facility not found")
		}

		url := usecases.NavigationURL(f.Location, f.Name, platform)
		return c.JSON(fiber.Map{"facility_id": facilityID, "platform": platform, "url": url})
	}
}

// ContactsHandler returns the fixed emergency contact directory.
func ContactsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if t := c.Query("type"); t != "" {
			contact := domain.ContactByType(t)
			if contact == nil {
				return errNotFound(c, "no contact of type "+t)
			}
			return c.JSON(contact)
		}
		return c.JSON(domain.EmergencyContacts)
	}
}

// reportRequest is the body for POST /v1/emergencies. Type is optional:
// when absent it is classified from the transcript.
type reportRequest struct {
	Type       string  `json:"type"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Transcript string  `json:"transcript"`
}

// ReportEmergencyHandler records a new emergency case.
func ReportEmergencyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req reportRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		typ := domain.EmergencyType(req.Type)
		if req.Type == "" {
			detected, ok := usecases.DetectEmergencyType(req.Transcript)
			if !ok {
				return errUnprocessable(c, "could not classify emergency from transcript")
			}
			typ = detected
		}
		if !typ.Valid() {
			return errBadRequest(c, "unknown emergency type: "+req.Type)
		}

		id, err := deps.Emergencies.Report(c.Context(), typ, req.Lat, req.Lng, req.Transcript)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCoordinate) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}

		metrics.EmergenciesReported.WithLabelValues(string(typ)).Inc()

		created, err := deps.Emergencies.GetByID(c.Context(), id)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.Status(201).JSON(created)
	}
}

// ListEmergenciesHandler returns the active case ring, most recent first.
func ListEmergenciesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cases := deps.Emergencies.List(c.Context())

		if status := c.Query("status"); status != "" {
			filtered := cases[:0:0]
			for _, ec := range cases {
				if string(ec.Status) == status {
					filtered = append(filtered, ec)
				}
			}
			cases = filtered
		}

		return c.JSON(fiber.Map{"data": cases, "total": len(cases)})
	}
}

// GetEmergencyHandler returns a single case by ID.
func GetEmergencyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		ec, err := deps.Emergencies.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "case not found")
		}
		return c.JSON(ec)
	}
}

// statusRequest is the body for PATCH /v1/emergencies/:id/status.
type statusRequest struct {
	Status string `json:"status"`
}

// UpdateEmergencyStatusHandler advances a case through its lifecycle.
func UpdateEmergencyStatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var req statusRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Status == "" {
			return errBadRequest(c, "status is required")
		}

		err := deps.Emergencies.UpdateStatus(c.Context(), id, domain.CaseStatus(req.Status))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrCaseNotFound):
				return errNotFound(c, "case not found")
			case errors.Is(err, domain.ErrIllegalTransition):
				return errConflict(c, err.Error())
			default:
				return errInternal(c, err.Error())
			}
		}

		metrics.StatusUpdates.WithLabelValues(req.Status).Inc()

		updated, err := deps.Emergencies.GetByID(c.Context(), id)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(updated)
	}
}

// detectRequest is the body for POST /v1/emergencies/detect.
type detectRequest struct {
	Transcript string `json:"transcript"`
}

// DetectEmergencyHandler classifies a transcript without recording a case.
func DetectEmergencyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req detectRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if strings.TrimSpace(req.Transcript) == "" {
			return errBadRequest(c, "transcript is required")
		}

		typ, ok := usecases.DetectEmergencyType(req.Transcript)
		lang := usecases.DetectLanguage(req.Transcript)

		resp := fiber.Map{"detected": ok, "language": lang}
		if ok {
			resp["type"] = typ
		}
		return c.JSON(resp)
	}
}

// SOSMessageHandler renders the shareable location message for an SOS hand-off.
func SOSMessageHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("lat") == "" || c.Query("lng") == "" {
			return c.JSON(fiber.Map{"message": usecases.EmergencyLocationFallbackMessage()})
		}

		lat := c.QueryFloat("lat", 0)
		lng := c.QueryFloat("lng", 0)
		if err := domain.ValidateCoordinate(lat, lng); err != nil {
			return errBadRequest(c, err.Error())
		}

		msg := usecases.EmergencyLocationMessage(domain.GeoPoint{Lat: lat, Lng: lng})
		return c.JSON(fiber.Map{"message": msg})
	}
}

// ArchiveListHandler returns recently archived cases from the durable store.
func ArchiveListHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Archive == nil {
			return errInternal(c, "archive not available")
		}
		limit := c.QueryInt("limit", 50)

		cases, err := deps.Archive.ListRecent(c.Context(), limit)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"data": cases, "total": len(cases)})
	}
}

// ArchiveStatsHandler aggregates archived cases by status.
func ArchiveStatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Archive == nil {
			return errInternal(c, "archive not available")
		}

		counts, err := deps.Archive.CountByStatus(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}

		out := make(map[string]int, len(counts))
		for status, n := range counts {
			out[string(status)] = n
		}
		return c.JSON(fiber.Map{"by_status": out})
	}
}
