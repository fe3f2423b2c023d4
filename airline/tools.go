// Package airline defines the built-in customer-support tools over a flight
// catalog, the assistant's system prompt, and the canned conversations used by
// the demo and evaluation commands.
package airline

import (
	"context"
	"fmt"

	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/catalog"
	"github.com/rickchristie/flightdesk/schema"
	"github.com/rickchristie/flightdesk/toolchain"
)

// Tool names advertised to the model.
const (
	ToolGetFlightInfo        = "get_flight_info"
	ToolSearchFlightsByRoute = "search_flights_by_route"
	ToolGetAllFlights        = "get_all_flights"
)

// -----------------------------------------------------------------------------
// Tool Input Types
// -----------------------------------------------------------------------------

type GetFlightInfoInput struct {
	FlightNumber string `json:"flight_number"`
}

type SearchFlightsByRouteInput struct {
	DepartureCity string `json:"departure_city"`
	ArrivalCity   string `json:"arrival_city"`
}

type GetAllFlightsInput struct{}

// -----------------------------------------------------------------------------
// Tools
// -----------------------------------------------------------------------------

// Tools builds the lookup tools over one catalog.
type Tools struct {
	catalog *catalog.Catalog
}

// NewTools creates the tools over c. A nil catalog means catalog.Default().
func NewTools(c *catalog.Catalog) *Tools {
	if c == nil {
		c = catalog.Default()
	}
	return &Tools{catalog: c}
}

// Catalog returns the catalog the tools read from.
func (t *Tools) Catalog() *catalog.Catalog {
	return t.catalog
}

// GetFlightInfoTool returns a tool that describes one flight by number.
func (t *Tools) GetFlightInfoTool() *flightdesk.ToolFunc[GetFlightInfoInput] {
	return flightdesk.NewToolFunc(
		ToolGetFlightInfo,
		"Get detailed information about a specific flight by flight number",
		schema.Object(map[string]*schema.Property{
			"flight_number": schema.String("The flight number to look up (e.g., 'AA123', 'DL456')"),
		}, "flight_number"),
		func(ctx context.Context, input GetFlightInfoInput) (string, error) {
			if rec, ok := t.catalog.Lookup(input.FlightNumber); ok {
				return catalog.Format(rec), nil
			}
			return fmt.Sprintf(
				"Flight %s not found in our system. "+
					"Please verify the flight number or contact customer service.",
				input.FlightNumber,
			), nil
		},
	)
}

// SearchFlightsByRouteTool returns a tool that lists flights between two
// cities or airports.
func (t *Tools) SearchFlightsByRouteTool() *flightdesk.ToolFunc[SearchFlightsByRouteInput] {
	return flightdesk.NewToolFunc(
		ToolSearchFlightsByRoute,
		"Search for flights between specific cities or airports",
		schema.Object(map[string]*schema.Property{
			"departure_city": schema.String("The departure city or airport code"),
			"arrival_city":   schema.String("The arrival city or airport code"),
		}, "departure_city", "arrival_city"),
		func(ctx context.Context, input SearchFlightsByRouteInput) (string, error) {
			found := t.catalog.Search(input.DepartureCity, input.ArrivalCity)
			if len(found) == 0 {
				return fmt.Sprintf("No flights found from %s to %s.",
					input.DepartureCity, input.ArrivalCity), nil
			}
			return fmt.Sprintf("Found %d flight(s) from %s to %s:\n\n%s",
				len(found), input.DepartureCity, input.ArrivalCity, catalog.FormatList(found)), nil
		},
	)
}

// GetAllFlightsTool returns a tool that lists every flight in the catalog.
func (t *Tools) GetAllFlightsTool() *flightdesk.ToolFunc[GetAllFlightsInput] {
	return flightdesk.NewToolFunc(
		ToolGetAllFlights,
		"Get a list of all available flights in the system",
		schema.NoParams(),
		func(ctx context.Context, input GetAllFlightsInput) (string, error) {
			all := t.catalog.All()
			if len(all) == 0 {
				return "All available flights (0 total):", nil
			}
			return fmt.Sprintf("All available flights (%d total):\n\n%s",
				len(all), catalog.FormatList(all)), nil
		},
	)
}

// All returns the tools in the order they are advertised.
func (t *Tools) All() []flightdesk.Tool {
	return []flightdesk.Tool{
		t.GetFlightInfoTool(),
		t.SearchFlightsByRouteTool(),
		t.GetAllFlightsTool(),
	}
}

// NewRegistry builds the tool registry for c.
func NewRegistry(c *catalog.Catalog) (*toolchain.Registry, error) {
	return toolchain.FromTools(NewTools(c).All()...)
}

// MustNewRegistry is like NewRegistry but panics on error. The built-in tool
// set is fixed, so an error here is a programming mistake.
func MustNewRegistry(c *catalog.Catalog) *toolchain.Registry {
	return toolchain.MustFromTools(NewTools(c).All()...)
}
