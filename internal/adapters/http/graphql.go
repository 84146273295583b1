package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	facilityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Facility",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"name_local":  &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: graphql.String},
			"location":    &graphql.Field{Type: geoPointType},
			"description": &graphql.Field{Type: graphql.String},
			"distance":    &graphql.Field{Type: graphql.Float},
		},
	})

	timelineType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Timeline",
		Fields: graphql.Fields{
			"voice_trigger": &graphql.Field{Type: graphql.String},
			"classified":    &graphql.Field{Type: graphql.String},
			"dispatched":    &graphql.Field{Type: graphql.String},
			"acknowledged":  &graphql.Field{Type: graphql.String},
			"resolved":      &graphql.Field{Type: graphql.String},
		},
	})

	emergencyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EmergencyCase",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.String},
			"type":               &graphql.Field{Type: graphql.String},
			"zone":               &graphql.Field{Type: graphql.String},
			"status":             &graphql.Field{Type: graphql.String},
			"coordinates":        &graphql.Field{Type: geoPointType},
			"language":           &graphql.Field{Type: graphql.String},
			"transcript_snippet": &graphql.Field{Type: graphql.String},
			"timeline":           &graphql.Field{Type: timelineType},
			"version":            &graphql.Field{Type: graphql.Int},
		},
	})

	contactType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EmergencyContact",
		Fields: graphql.Fields{
			"name":       &graphql.Field{Type: graphql.String},
			"name_local": &graphql.Field{Type: graphql.String},
			"number":     &graphql.Field{Type: graphql.String},
			"type":       &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"facilities": &graphql.Field{
				Type:        graphql.NewList(facilityType),
				Description: "List the facility catalog, optionally by category",
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if cat, ok := p.Args["category"].(string); ok && cat != "" {
						return deps.Facilities.ByCategory(p.Context, domain.FacilityCategory(cat)), nil
					}
					return deps.Facilities.All(p.Context), nil
				},
			},
			"facilitiesNearby": &graphql.Field{
				Type:        graphql.NewList(facilityType),
				Description: "Find facilities near a location",
				Args: graphql.FieldConfigArgument{
					"lat":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"radius":   &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lng := p.Args["lng"].(float64)
					radius := p.Args["radius"].(float64)
					category, _ := p.Args["category"].(string)
					return deps.Facilities.FindNearby(p.Context,
						domain.GeoPoint{Lat: lat, Lng: lng},
						domain.FacilityCategory(category), radius)
				},
			},
			"nearestFacility": &graphql.Field{
				Type:        facilityType,
				Description: "Closest facility of a category, unbounded by radius",
				Args: graphql.FieldConfigArgument{
					"lat":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"category": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lng := p.Args["lng"].(float64)
					category := p.Args["category"].(string)
					return deps.Facilities.Nearest(p.Context,
						domain.GeoPoint{Lat: lat, Lng: lng},
						domain.FacilityCategory(category))
				},
			},
			"facility": &graphql.Field{
				Type:        facilityType,
				Description: "Get a facility by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Facilities.GetByID(p.Context, id), nil
				},
			},
			"emergencies": &graphql.Field{
				Type:        graphql.NewList(emergencyType),
				Description: "Active emergency cases, most recent first",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Emergencies.List(p.Context), nil
				},
			},
			"emergency": &graphql.Field{
				Type:        emergencyType,
				Description: "Get an emergency case by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Emergencies.GetByID(p.Context, id)
				},
			},
			"contacts": &graphql.Field{
				Type:        graphql.NewList(contactType),
				Description: "Fixed emergency contact directory",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return domain.EmergencyContacts, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
