package model

// Intent tags produced by classification.
const (
	IntentFlights    = "ask_flights"
	IntentActivities = "ask_activities"
	IntentChat       = "chat"
	IntentError      = "error"
)

// Intent is the parsed output of the classification call. The model answers
// with exactly one of the JSON variants described in the classification
// prompt; unknown or missing tags fall through to the chat branch.
type Intent struct {
	Intent      string   `json:"intent"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Date        string   `json:"date"`
	ReturnDate  string   `json:"returnDate"`
	Adults      int      `json:"adults"`
	Missing     []string `json:"missing"`
	City        string   `json:"city"`
	Response    string   `json:"response"`
}
