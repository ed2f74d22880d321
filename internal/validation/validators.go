package validation

import (
	"fmt"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	if err := Validate.RegisterValidation("traveler_type", validateTravelerType); err != nil {
		panic(fmt.Sprintf("failed to register traveler_type validator: %v", err))
	}
	if err := Validate.RegisterValidation("travel_phase", validateTravelPhase); err != nil {
		panic(fmt.Sprintf("failed to register travel_phase validator: %v", err))
	}
}

// validateTravelerType validates that a string is a valid TravelerType enum value
func validateTravelerType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.TravelerType(value) {
	case models.TravelerCultural, models.TravelerAdventure, models.TravelerRelax,
		models.TravelerGastronomy, models.TravelerBusiness, models.TravelerGeneral:
		return true
	default:
		return false
	}
}

// validateTravelPhase validates that a string is a valid TravelPhase enum value
func validateTravelPhase(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.TravelPhase(value) {
	case models.PhasePlanning, models.PhaseDeparture, models.PhaseArrival,
		models.PhaseExploring, models.PhaseReturn:
		return true
	default:
		return false
	}
}

// ValidateTravelerType validates a TravelerType string value
func ValidateTravelerType(value string) error {
	switch models.TravelerType(value) {
	case models.TravelerCultural, models.TravelerAdventure, models.TravelerRelax,
		models.TravelerGastronomy, models.TravelerBusiness, models.TravelerGeneral:
		return nil
	default:
		return fmt.Errorf("invalid traveler_type: %s (must be 'cultural', 'adventure', 'relax', 'gastronomy', 'business', or 'general')", value)
	}
}

// ValidateTravelPhase validates a TravelPhase string value
func ValidateTravelPhase(value string) error {
	switch models.TravelPhase(value) {
	case models.PhasePlanning, models.PhaseDeparture, models.PhaseArrival,
		models.PhaseExploring, models.PhaseReturn:
		return nil
	default:
		return fmt.Errorf("invalid travel_phase: %s (must be 'planning', 'departure', 'arrival', 'exploring', or 'return')", value)
	}
}
