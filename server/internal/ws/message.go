package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/launchboard/launchboard/pkg/types"
	"github.com/launchboard/launchboard/server/internal/dashboard"
)

// Event names sent to clients.
const (
	EventViews = "views"
	EventError = "error"
)

// Message is the JSON envelope sent to clients.
type Message struct {
	Event       string                     `json:"event"`
	Site        string                     `json:"site,omitempty"`
	Payload     *[2]float64                `json:"payload,omitempty"`
	Summary     *dashboard.SummaryView     `json:"summary,omitempty"`
	Correlation *dashboard.CorrelationView `json:"correlation,omitempty"`
	Error       string                     `json:"error,omitempty"`
}

// Request is one input change sent by a client.
type Request struct {
	Site    *string   `json:"site,omitempty"`
	Payload []float64 `json:"payload,omitempty"`
}

var errEmptySite = errors.New("site must not be empty")

// parseRequest decodes a client frame into a controller Change.
func parseRequest(data []byte) (dashboard.Change, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return dashboard.Change{}, fmt.Errorf("invalid message: %w", err)
	}

	var ch dashboard.Change
	if req.Site != nil {
		if *req.Site == "" {
			return dashboard.Change{}, errEmptySite
		}
		sel := types.SiteSelection(*req.Site)
		ch.Site = &sel
	}
	if req.Payload != nil {
		if len(req.Payload) != 2 {
			return dashboard.Change{}, fmt.Errorf("payload must be [low, high], got %d values", len(req.Payload))
		}
		ch.Payload = &types.PayloadRange{Low: req.Payload[0], High: req.Payload[1]}
	}
	return ch, nil
}

func viewsMessage(in dashboard.Inputs, u dashboard.Update) Message {
	return Message{
		Event:       EventViews,
		Site:        string(in.Site),
		Payload:     &[2]float64{in.Payload.Low, in.Payload.High},
		Summary:     u.Summary,
		Correlation: u.Correlation,
	}
}

func errorMessage(err error) Message {
	return Message{Event: EventError, Error: err.Error()}
}
