package handler

import (
	"net/http"
	"strconv"

	"github.com/flightwise-ai/travel-assistant/internal/airport"
	"github.com/flightwise-ai/travel-assistant/internal/flights"
	"github.com/flightwise-ai/travel-assistant/pkg/logger"
)

// DebugHandler exposes the downstream clients directly for manual testing.
type DebugHandler struct {
	flights flights.Client
	logger  *logger.Logger
}

// NewDebugHandler creates a new debug handler.
func NewDebugHandler(flightClient flights.Client, log *logger.Logger) *DebugHandler {
	return &DebugHandler{
		flights: flightClient,
		logger:  log,
	}
}

// Flights handles GET /api/test/flights
func (h *DebugHandler) Flights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	origin := q.Get("origin")
	if origin == "" {
		origin = "BOG"
	}
	destination := q.Get("destination")
	if destination == "" {
		destination = "MDE"
	}

	adults := 1
	if a := q.Get("adults"); a != "" {
		if parsed, err := strconv.Atoi(a); err == nil && parsed > 0 {
			adults = parsed
		}
	}

	combined, err := h.flights.Search(r.Context(), flights.SearchParams{
		Origin:      origin,
		Destination: destination,
		Date:        q.Get("date"),
		ReturnDate:  q.Get("returnDate"),
		Adults:      adults,
	})
	if err != nil {
		h.logger.Error("flight search failed")
		writeError(w, http.StatusBadGateway, "flight search failed")
		return
	}

	writeJSON(w, http.StatusOK, combined)
}

// AirportCode handles GET /api/test/airport-code
func (h *DebugHandler) AirportCode(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	writeJSON(w, http.StatusOK, map[string]string{
		"city": city,
		"code": airport.Resolve(city),
	})
}
