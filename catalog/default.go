package catalog

// DefaultFlights returns the sample flights the assistant ships with.
func DefaultFlights() []FlightRecord {
	return []FlightRecord{
		{
			ID:          "AA123",
			Origin:      "New York (JFK)",
			Destination: "Los Angeles (LAX)",
			Departure:   "08:00 AM",
			Arrival:     "11:30 AM",
			Status:      "On Time",
			Gate:        "A12",
			Terminal:    "Terminal 4",
		},
		{
			ID:          "DL456",
			Origin:      "Chicago (ORD)",
			Destination: "Miami (MIA)",
			Departure:   "02:15 PM",
			Arrival:     "06:45 PM",
			Status:      "Delayed - 30 minutes",
			Gate:        "B8",
			Terminal:    "Terminal 1",
		},
		{
			ID:          "UA789",
			Origin:      "San Francisco (SFO)",
			Destination: "Seattle (SEA)",
			Departure:   "05:20 PM",
			Arrival:     "07:40 PM",
			Status:      "Boarding",
			Gate:        "C15",
			Terminal:    "Terminal 3",
		},
		{
			ID:          "SW101",
			Origin:      "Denver (DEN)",
			Destination: "Phoenix (PHX)",
			Departure:   "09:45 AM",
			Arrival:     "11:10 AM",
			Status:      "Cancelled",
			Terminal:    "Terminal West",
		},
	}
}

// Default returns a catalog of DefaultFlights.
func Default() *Catalog {
	return MustNew(DefaultFlights()...)
}
