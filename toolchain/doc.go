// Package toolchain provides the name-keyed tool registry used by the
// assistant.
//
// # Overview
//
// A Registry is responsible for:
//  1. Advertising the fixed tool set to the model (Descriptors)
//  2. Validating call arguments against each tool's JSON Schema
//  3. Dispatching calls by name and turning every failure into result text
//
// Construction fails when the advertised descriptors and the dispatch table
// drift apart, so a tool can never be advertised without an implementation
// or implemented without being advertised.
//
// # Example Usage
//
//	type flightArgs struct {
//	    FlightNumber string `json:"flight_number"`
//	}
//
//	lookup := flightdesk.NewToolFunc(
//	    "get_flight_info",
//	    "Get detailed information about a specific flight by flight number",
//	    schema.Object(map[string]*schema.Property{
//	        "flight_number": schema.String("The flight number to look up"),
//	    }, "flight_number"),
//	    func(ctx context.Context, in flightArgs) (string, error) {
//	        return describe(in.FlightNumber), nil
//	    },
//	)
//
//	reg, err := toolchain.FromTools(lookup)
//	text := reg.DispatchCall(ctx, call) // never fails
//
// # Result Texts
//
// Dispatch always returns text for the model:
//
//	Unknown function: <name>
//	Error executing <name>: <detail>
//
// or the tool's own output.
package toolchain
