package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/weather"
)

// DestinationPlaceholder substitutes for an absent destination in replies
// and weather lookups.
const DestinationPlaceholder = "tu destino"

// Keyword sets checked in order; the first category with a match wins, so a
// message naming both food and transport gets the food reply.
var keywordCategories = []struct {
	category string
	words    []string
}{
	{"weather", []string{"clima", "tiempo", "lluvia", "temperatura"}},
	{"food", []string{"restaurante", "comida", "comer", "almorzar", "cenar"}},
	{"lodging", []string{"hotel", "alojamiento", "dormir", "check"}},
	{"transport", []string{"transporte", "metro", "taxi", "bus", "movimiento"}},
	{"currency", []string{"moneda", "dinero", "cambio", "pagar"}},
	{"language", []string{"idioma", "hablar", "frases", "comunicar"}},
	{"safety", []string{"seguridad", "peligro", "cuidado", "emergencia"}},
	{"activities", []string{"actividades", "hacer", "visitar", "turismo"}},
}

var foodRecommendations = map[models.TravelerType]string{
	models.TravelerCultural:   "restaurantes tradicionales con historia local",
	models.TravelerAdventure:  "lugares de comida rápida cerca de actividades",
	models.TravelerRelax:      "restaurantes con ambiente tranquilo y vista",
	models.TravelerGastronomy: "experiencias gastronómicas únicas y mercados locales",
	models.TravelerBusiness:   "restaurantes ejecutivos y de networking",
}

const defaultFoodRecommendation = "restaurantes recomendados"

var activityRecommendations = map[models.TravelerType]string{
	models.TravelerCultural:   "museos, sitios históricos, tours guiados",
	models.TravelerAdventure:  "deportes extremos, hiking, actividades al aire libre",
	models.TravelerRelax:      "spas, playas, parques tranquilos",
	models.TravelerGastronomy: "tours gastronómicos, mercados, clases de cocina",
	models.TravelerBusiness:   "centros de negocios, networking events, tours ejecutivos",
}

const defaultActivityRecommendation = "atracciones principales"

// Composer produces deterministic travel replies from keyword rules and the
// stored trip context. It is the fallback path when the chat backend is
// unavailable, and the only path when none is configured.
type Composer struct {
	weather weather.Lookup
}

// NewComposer creates a composer backed by the given weather lookup.
func NewComposer(lookup weather.Lookup) *Composer {
	return &Composer{weather: lookup}
}

// Compose maps (message, context) to a reply. It always returns non-empty
// text and never fails: a weather lookup problem surfaces as the fallback
// reading inside the reply, not as an error.
func (c *Composer) Compose(ctx context.Context, message string, tctx models.TripContext) string {
	lower := strings.ToLower(message)
	destination := tctx.Destination
	if destination == "" {
		destination = DestinationPlaceholder
	}
	travelerType := tctx.TravelerTypeOrDefault()

	switch matchCategory(lower) {
	case "weather":
		return c.weatherReply(ctx, destination)
	case "food":
		rec, ok := foodRecommendations[travelerType]
		if !ok {
			rec = defaultFoodRecommendation
		}
		return fmt.Sprintf("🍽️ Para un viajero %s en %s, te recomiendo %s. ¿Te interesa alguna cocina específica? También puedo sugerirte horarios ideales para evitar multitudes.", travelerType, destination, rec)
	case "lodging":
		return fmt.Sprintf("🏨 Para tu estadía en %s: Check-in típicamente 15:00, check-out 11:00. Te recomiendo confirmar horarios con tu hotel. ¿Necesitas ayuda con late check-out o early check-in?", destination)
	case "transport":
		return fmt.Sprintf("🚇 Transporte en %s: Te recomiendo apps locales de transporte y tarjetas de transporte público para ahorrar. ¿Te ayudo con rutas específicas o mejor forma de llegar a algún lugar?", destination)
	case "currency":
		return fmt.Sprintf("💱 Para %s: Te recomiendo llevar efectivo local y una tarjeta internacional sin comisiones. Muchos lugares aceptan tarjeta, pero mercados y pequeños comercios prefieren efectivo.", destination)
	case "language":
		return fmt.Sprintf("🗣️ Comunicación en %s: Las frases básicas más útiles son 'Hola', 'Gracias', 'Disculpe', '¿Habla inglés?', y 'La cuenta, por favor'. ¿Te ayudo con pronunciación o frases específicas?", destination)
	case "safety":
		return fmt.Sprintf("🛡️ Seguridad en %s: Mantén copias de documentos importantes, evita mostrar objetos de valor, usa transporte oficial. Número de emergencias local disponible en tu hotel. ¿Necesitas info específica de tu zona?", destination)
	case "activities":
		rec, ok := activityRecommendations[travelerType]
		if !ok {
			rec = defaultActivityRecommendation
		}
		return fmt.Sprintf("🎯 Actividades recomendadas en %s para ti: %s. ¿Te interesa algo específico o prefieres un itinerario completo del día?", destination, rec)
	}

	return phaseReply(tctx.TravelPhase, travelerType, destination)
}

// matchCategory returns the first category whose keyword set matches, or "".
func matchCategory(lowerMessage string) string {
	for _, cat := range keywordCategories {
		for _, word := range cat.words {
			if strings.Contains(lowerMessage, word) {
				return cat.category
			}
		}
	}
	return ""
}

func (c *Composer) weatherReply(ctx context.Context, destination string) string {
	reading := c.weather.Fetch(ctx, destination)

	// Strict > 50 for the rain phrase; exactly 50 reads as clear
	rainPhrase := "☀️ Día despejado"
	if reading.RainProbabilityPct > 50 {
		rainPhrase = "☔ Posible lluvia"
	}

	return fmt.Sprintf("🌤️ El clima en %s: %g°C, %s. Humedad: %d%%. %s. ¡Perfecto para explorar!",
		destination, reading.TemperatureC, reading.Description, reading.HumidityPct, rainPhrase)
}

func phaseReply(phase models.TravelPhase, travelerType models.TravelerType, destination string) string {
	switch phase {
	case models.PhasePlanning:
		return fmt.Sprintf("✈️ ¡Genial que estés planeando tu viaje a %s! Te puedo ayudar con clima, actividades, presupuesto, documentos necesarios. ¿Qué te interesa saber primero?", destination)
	case models.PhaseDeparture:
		return fmt.Sprintf("🛄 ¡Casi listo para viajar a %s! Recuerda llegar 3 horas antes para vuelos internacionales, documentos en orden, y revisar restricciones de equipaje. ¿Necesitas ayuda con algo específico?", destination)
	case models.PhaseArrival:
		return fmt.Sprintf("🛬 ¡Bienvenido a %s! Las primeras cosas: transporte al hotel, cambio de dinero si necesitas, y orientarte con la ciudad. ¿En qué te ayudo primero?", destination)
	case models.PhaseExploring:
		return fmt.Sprintf("🗺️ ¡Perfecto para explorar %s! Te puedo ayudar con recomendaciones cercanas, horarios de atracciones, mejores rutas, y tips locales. ¿Qué planes tienes hoy?", destination)
	case models.PhaseReturn:
		return fmt.Sprintf("🧳 Preparando el regreso desde %s: Check-out del hotel, compras de último momento, horarios al aeropuerto. ¿Necesitas ayuda con algo específico?", destination)
	}
	return fmt.Sprintf("¡Perfecto! Como viajero %s en %s, te puedo ayudar con muchísimas cosas: clima actual, restaurantes, actividades, transporte, consejos locales. ¿Hay algo específico que te interese saber? 🤔", travelerType, destination)
}
