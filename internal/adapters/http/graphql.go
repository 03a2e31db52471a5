package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.String},
			"email":         &graphql.Field{Type: graphql.String},
			"latitude1":     &graphql.Field{Type: graphql.Float},
			"longitude1":    &graphql.Field{Type: graphql.Float},
			"latitude2":     &graphql.Field{Type: graphql.Float},
			"longitude2":    &graphql.Field{Type: graphql.Float},
			"is_subscribed": &graphql.Field{Type: graphql.Boolean},
			"created_at":    &graphql.Field{Type: graphql.DateTime},
			"updated_at":    &graphql.Field{Type: graphql.DateTime},
		},
	})

	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AirQualityLocation",
		Fields: graphql.Fields{
			"neighborhood": &graphql.Field{Type: graphql.String},
			"city":         &graphql.Field{Type: graphql.String},
			"country":      &graphql.Field{Type: graphql.String},
			"latitude":     &graphql.Field{Type: graphql.Float},
			"longitude":    &graphql.Field{Type: graphql.Float},
		},
	})

	currentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AirQualityCurrent",
		Fields: graphql.Fields{
			"datetime":     &graphql.Field{Type: graphql.DateTime},
			"AQI":          &graphql.Field{Type: graphql.Int},
			"AQI_category": &graphql.Field{Type: graphql.String},
			"AQI_color":    &graphql.Field{Type: graphql.String},
			"NO2":          &graphql.Field{Type: graphql.Float},
			"O3":           &graphql.Field{Type: graphql.Float},
			"PM25":         &graphql.Field{Type: graphql.Float},
		},
	})

	dailyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AirQualityDaily",
		Fields: graphql.Fields{
			"hours": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"AQI":   &graphql.Field{Type: graphql.NewList(graphql.Int)},
			"NO2":   &graphql.Field{Type: graphql.NewList(graphql.Float)},
			"O3":    &graphql.Field{Type: graphql.NewList(graphql.Float)},
			"PM25":  &graphql.Field{Type: graphql.NewList(graphql.Float)},
		},
	})

	reportType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AirQualityReport",
		Fields: graphql.Fields{
			"location": &graphql.Field{Type: locationType},
			"current":  &graphql.Field{Type: currentType},
			"daily":    &graphql.Field{Type: dailyType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:        graphql.NewList(userType),
				Description: "List all registered users",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Users.List(p.Context)
				},
			},
			"airQuality": &graphql.Field{
				Type:        reportType,
				Description: "Air-quality report for a location",
				Args: graphql.FieldConfigArgument{
					"latitude":  &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 49.2827},
					"longitude": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: -123.1207},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["latitude"].(float64)
					lng := p.Args["longitude"].(float64)
					return deps.AirQuality.Report(lat, lng), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"setSubscription": &graphql.Field{
				Type:        userType,
				Description: "Subscribe or unsubscribe a user",
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"action": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					action := p.Args["action"].(string)
					return deps.Users.SetSubscription(p.Context, id, action)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
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
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}

// Ensure domain types resolve through graphql-go via struct tags
var _ = domain.User{}
var _ = domain.AirQualityReport{}
