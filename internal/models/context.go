package models

// TravelerType is a coarse persona tag used to select recommendation text
type TravelerType string

const (
	TravelerCultural   TravelerType = "cultural"
	TravelerAdventure  TravelerType = "adventure"
	TravelerRelax      TravelerType = "relax"
	TravelerGastronomy TravelerType = "gastronomy"
	TravelerBusiness   TravelerType = "business"
	TravelerGeneral    TravelerType = "general"
)

// TravelPhase is the coarse stage of a trip lifecycle
type TravelPhase string

const (
	PhasePlanning  TravelPhase = "planning"
	PhaseDeparture TravelPhase = "departure"
	PhaseArrival   TravelPhase = "arrival"
	PhaseExploring TravelPhase = "exploring"
	PhaseReturn    TravelPhase = "return"
)

// TripContext carries the lightweight trip state attached to a chat request.
// It is immutable per request; session updates overlay fields, last write wins.
type TripContext struct {
	Destination  string       `json:"destination,omitempty"`
	TravelerType TravelerType `json:"traveler_type,omitempty" validate:"omitempty,traveler_type"`
	TravelPhase  TravelPhase  `json:"travel_phase,omitempty" validate:"omitempty,travel_phase"`
	SessionID    string       `json:"session_id,omitempty"`
	UserID       string       `json:"user_id,omitempty"`
}

// Overlay returns a copy of c with the non-empty fields of update applied on top.
func (c TripContext) Overlay(update TripContext) TripContext {
	out := c
	if update.Destination != "" {
		out.Destination = update.Destination
	}
	if update.TravelerType != "" {
		out.TravelerType = update.TravelerType
	}
	if update.TravelPhase != "" {
		out.TravelPhase = update.TravelPhase
	}
	if update.SessionID != "" {
		out.SessionID = update.SessionID
	}
	if update.UserID != "" {
		out.UserID = update.UserID
	}
	return out
}

// TravelerTypeOrDefault returns the traveler type, defaulting to general.
func (c TripContext) TravelerTypeOrDefault() TravelerType {
	if c.TravelerType == "" {
		return TravelerGeneral
	}
	return c.TravelerType
}
