package events

// Event is an upstream concert listing, passed through unmodified.
type Event struct {
	ID          int64         `json:"id"`
	DisplayName string        `json:"displayName"`
	Type        string        `json:"type,omitempty"`
	URI         string        `json:"uri,omitempty"`
	Venue       Venue         `json:"venue"`
	Location    Location      `json:"location"`
	Start       Start         `json:"start"`
	Performance []Performance `json:"performance"`
}

// Venue is where an event takes place.
type Venue struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"displayName"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// Location is the city-level position of an event.
type Location struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Start is an event's start moment. Date and Datetime are upstream-formatted
// strings (YYYY-MM-DD and RFC3339-like respectively) and sort lexically.
type Start struct {
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
	Datetime string `json:"datetime"`
}

// Performance is one billed artist slot on an event.
type Performance struct {
	DisplayName  string `json:"displayName"`
	Billing      string `json:"billing,omitempty"`
	BillingIndex int    `json:"billingIndex,omitempty"`
	Artist       Artist `json:"artist"`
}

// Artist identifies a performer.
type Artist struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	URI         string `json:"uri,omitempty"`
}

// MetroArea is the stable identifier a free-text location resolves to.
type MetroArea struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
}

// LocationResult is one ranked hit from a location search.
type LocationResult struct {
	City struct {
		DisplayName string `json:"displayName"`
	} `json:"city"`
	MetroArea MetroArea `json:"metroArea"`
}

// resultsPage mirrors the upstream search envelope.
type resultsPage struct {
	ResultsPage struct {
		Results struct {
			Location []LocationResult `json:"location"`
			Event    []Event          `json:"event"`
		} `json:"results"`
	} `json:"resultsPage"`
}
