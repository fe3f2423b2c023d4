package airline

// DemoQuestions is the short scripted conversation run by the demo command.
var DemoQuestions = []string{
	"What's the status of flight AA123?",
	"Can you tell me about baggage policies?",
	"How do I check in online?",
}

// TourQuestion is one step of the tool tour, with the tool it is expected to
// trigger (empty when no tool should be used).
type TourQuestion struct {
	Question     string
	ExpectedTool string
}

// ToolTour walks through every built-in tool plus one general question.
var ToolTour = []TourQuestion{
	{Question: "What's the status of flight AA123?", ExpectedTool: ToolGetFlightInfo},
	{Question: "Can you find flights from New York to Los Angeles?", ExpectedTool: ToolSearchFlightsByRoute},
	{Question: "What flights do you have available today?", ExpectedTool: ToolGetAllFlights},
	{Question: "What's your baggage policy?"},
	{Question: "Is flight DL456 delayed?", ExpectedTool: ToolGetFlightInfo},
	{Question: "Show me flights from San Francisco to Seattle", ExpectedTool: ToolSearchFlightsByRoute},
}

// ExampleQuestions are suggested in the interactive help screen.
var ExampleQuestions = []string{
	"What's the status of flight AA123?",
	"Can you help me with baggage allowance?",
	"How do I check in online?",
	"What are your cancellation policies?",
}
