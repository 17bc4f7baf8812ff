// Package service provides business logic for the travel assistant.
package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flightwise-ai/travel-assistant/internal/airport"
	"github.com/flightwise-ai/travel-assistant/internal/flights"
	"github.com/flightwise-ai/travel-assistant/internal/llm"
	"github.com/flightwise-ai/travel-assistant/internal/memory"
	"github.com/flightwise-ai/travel-assistant/internal/model"
	"github.com/flightwise-ai/travel-assistant/pkg/logger"
	"github.com/flightwise-ai/travel-assistant/pkg/metrics"
)

// Fixed user-facing replies.
const (
	fallbackGreeting       = "¡Hola! Soy FlightWise. ¿En qué puedo ayudarte? 😊"
	defaultChatReply       = "¡Hola! Soy FlightWise, tu asistente de viajes. ¿En qué puedo ayudarte? 😊"
	missingFlightDataReply = "Para buscar el vuelo necesito origen, destino y fecha. ¿Me los indicas? 😊"
	missingCityReply       = "¿En qué ciudad te gustaría saber qué hacer? 😊"
	noFlightsReply         = "No encontré vuelos disponibles para esas fechas y ciudades. ¿Te gustaría intentar con otras fechas?"
	apologyReply           = "¡Disculpa! Tuve un problema procesando tu solicitud. Por favor intenta nuevamente 😊"
)

// ChatService runs the intent-driven chat pipeline.
type ChatService struct {
	store   memory.Store
	llm     llm.Client
	flights flights.Client
	logger  *logger.Logger

	historyLimit int
	now          func() time.Time
	newSessionID func() string
}

// NewChatService creates a new chat service.
func NewChatService(
	store memory.Store,
	llmClient llm.Client,
	flightClient flights.Client,
	historyLimit int,
	log *logger.Logger,
) *ChatService {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &ChatService{
		store:        store,
		llm:          llmClient,
		flights:      flightClient,
		logger:       log,
		historyLimit: historyLimit,
		now:          time.Now,
		newSessionID: uuid.NewString,
	}
}

// HandleMessage runs one chat turn. It never fails outward: any internal
// error becomes a generic apology tagged with the error intent, paired with a
// best-effort session id.
func (s *ChatService) HandleMessage(ctx context.Context, sessionID, message string) *model.ChatResponse {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		sid = s.newSessionID()
	}

	resp, err := s.handle(ctx, sid, message)
	if err != nil {
		s.logger.Error("chat turn failed", zap.String("session_id", sid), zap.Error(err))
		metrics.IntentsTotal.WithLabelValues(model.IntentError).Inc()
		return &model.ChatResponse{
			SessionID:      sid,
			Response:       apologyReply,
			Intent:         model.IntentError,
			IsFlightSearch: false,
		}
	}
	return resp
}

func (s *ChatService) handle(ctx context.Context, sessionID, message string) (*model.ChatResponse, error) {
	// History sent to the model excludes the new message, which is passed
	// separately as the current message.
	history := s.store.Formatted(sessionID, s.historyLimit)
	s.store.Append(sessionID, model.RoleUser, message)

	today := s.now().Format("2006-01-02")
	raw, err := s.llm.Complete(ctx, intentPrompt(message, history, today), intentOptions)
	if err != nil {
		return nil, err
	}

	intent := s.parseIntent(raw)
	metrics.IntentsTotal.WithLabelValues(intentTag(intent)).Inc()

	switch intent.Intent {
	case model.IntentFlights:
		return s.handleFlights(ctx, sessionID, intent)
	case model.IntentActivities:
		return s.handleActivities(ctx, sessionID, intent)
	default:
		text := intent.Response
		if strings.TrimSpace(text) == "" {
			text = defaultChatReply
		}
		return s.reply(sessionID, text, intentTag(intent), false), nil
	}
}

func (s *ChatService) handleFlights(ctx context.Context, sessionID string, intent *model.Intent) (*model.ChatResponse, error) {
	// Incomplete request: the clarifying question is already embedded in the
	// classification result, no extra calls.
	if len(intent.Missing) > 0 {
		text := intent.Response
		if strings.TrimSpace(text) == "" {
			text = missingFlightDataReply
		}
		return s.reply(sessionID, text, model.IntentFlights, false), nil
	}

	originCode, destCode := s.resolveCodes(ctx, intent.Origin, intent.Destination)

	s.logger.Info("resolved airport codes",
		zap.String("origin", intent.Origin),
		zap.String("origin_code", originCode),
		zap.String("destination", intent.Destination),
		zap.String("destination_code", destCode),
	)

	adults := intent.Adults
	if adults <= 0 {
		adults = 1
	}

	combined, err := s.flights.Search(ctx, flights.SearchParams{
		Origin:      originCode,
		Destination: destCode,
		Date:        intent.Date,
		ReturnDate:  intent.ReturnDate,
		Adults:      adults,
	})
	if err != nil {
		return nil, err
	}

	if combined.Failed() {
		return s.reply(sessionID, noFlightsReply, model.IntentFlights, true), nil
	}

	data, err := json.Marshal(combined)
	if err != nil {
		return nil, err
	}

	text, err := s.llm.Complete(ctx, flightReplyPrompt(string(data)), flightReplyOptions)
	if err != nil {
		return nil, err
	}

	if link := combined.GoogleFlightsURL(); link != "" {
		text += "\n\n🔗 **[Ver más opciones en Google Flights](" + link + ")**"
	}

	return s.reply(sessionID, text, model.IntentFlights, true), nil
}

func (s *ChatService) handleActivities(ctx context.Context, sessionID string, intent *model.Intent) (*model.ChatResponse, error) {
	if strings.TrimSpace(intent.City) != "" {
		text, err := s.llm.Complete(ctx, activitiesPrompt(intent.City), activitiesOptions)
		if err != nil {
			return nil, err
		}
		return s.reply(sessionID, text, model.IntentActivities, false), nil
	}

	text := intent.Response
	if strings.TrimSpace(text) == "" {
		text = missingCityReply
	}
	return s.reply(sessionID, text, model.IntentActivities, false), nil
}

// resolveCodes maps both city names to IATA codes, asking the model for any
// leg the static table could not resolve. Both model lookups run
// concurrently; a failed lookup keeps the unresolved name so the flight
// search degrades instead of aborting the turn.
func (s *ChatService) resolveCodes(ctx context.Context, origin, destination string) (string, string) {
	originCode := airport.Resolve(origin)
	destCode := airport.Resolve(destination)

	originNeeds := !airport.IsCode(originCode)
	destNeeds := !airport.IsCode(destCode)
	if !originNeeds && !destNeeds {
		return originCode, destCode
	}

	var wg sync.WaitGroup
	resolve := func(name string, out *string) {
		defer wg.Done()
		code, err := s.resolveAirport(ctx, name)
		if err != nil {
			s.logger.Warn("airport resolution failed", zap.String("city", name), zap.Error(err))
			return
		}
		*out = code
	}

	if originNeeds {
		wg.Add(1)
		go resolve(origin, &originCode)
	}
	if destNeeds {
		wg.Add(1)
		go resolve(destination, &destCode)
	}
	wg.Wait()

	return originCode, destCode
}

func (s *ChatService) resolveAirport(ctx context.Context, city string) (string, error) {
	text, err := s.llm.Complete(ctx, airportCodePrompt(city), resolveOptions)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strings.TrimSpace(text)), nil
}

// parseIntent parses the raw classification output, stripping a fenced code
// block if present. Malformed output falls back to a chat greeting and must
// never abort the request.
func (s *ChatService) parseIntent(raw string) *model.Intent {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.ReplaceAll(cleaned, "```json", "")
		cleaned = strings.ReplaceAll(cleaned, "```", "")
		cleaned = strings.TrimSpace(cleaned)
	}

	var intent model.Intent
	if err := json.Unmarshal([]byte(cleaned), &intent); err != nil {
		s.logger.Warn("unparseable intent, falling back to chat", zap.Error(err))
		return &model.Intent{Intent: model.IntentChat, Response: fallbackGreeting}
	}
	return &intent
}

func intentTag(intent *model.Intent) string {
	if intent.Intent == "" {
		return model.IntentChat
	}
	return intent.Intent
}

// reply appends the assistant turn and composes the chat response.
func (s *ChatService) reply(sessionID, text, intentTag string, isFlightSearch bool) *model.ChatResponse {
	s.store.Append(sessionID, model.RoleAssistant, text)
	return &model.ChatResponse{
		SessionID:      sessionID,
		Response:       text,
		Intent:         intentTag,
		IsFlightSearch: isFlightSearch,
	}
}

// History returns the stored turns of a session.
func (s *ChatService) History(sessionID string) []model.Turn {
	return s.store.History(sessionID)
}

// ClearSession removes a session's history. Unknown sessions are a no-op.
func (s *ChatService) ClearSession(sessionID string) {
	s.store.Clear(sessionID)
}
