package notify

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Rules is the static configuration driving notification checks. Weather
// thresholds gate alerts; HourMessages maps exact local clock hours to
// recommendation texts fired while exploring.
type Rules struct {
	TempLowC     float64        `yaml:"temperature_low"`
	TempHighC    float64        `yaml:"temperature_high"`
	RainPct      int            `yaml:"rain_probability"`
	HourMessages map[int]string `yaml:"hour_messages"`
}

// DefaultRules returns the built-in thresholds and trigger-hour texts.
func DefaultRules() Rules {
	return Rules{
		TempLowC:  10,
		TempHighC: 35,
		RainPct:   70,
		HourMessages: map[int]string{
			8:  "🌅 ¡Buenos días! Perfecto momento para visitar atracciones antes de las multitudes. ¿Te ayudo con un itinerario matutino?",
			12: "🍽️ ¡Es hora de almorzar! ¿Te ayudo a encontrar un restaurante cerca de tu ubicación actual?",
			18: "🌅 Atardecer perfecto para fotos. ¿Conoces los mejores spots fotográficos de tu destino?",
			20: "🌃 Perfecto momento para cenar y vida nocturna. ¿Te interesa la gastronomía local o prefieres algo familiar?",
		},
	}
}

// LoadRulesFile reads a YAML rules file over the defaults. Absent fields keep
// their default values; an empty path returns the defaults unchanged.
func LoadRulesFile(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("failed to read rules file: %w", err)
	}

	var override struct {
		TempLowC     *float64       `yaml:"temperature_low"`
		TempHighC    *float64       `yaml:"temperature_high"`
		RainPct      *int           `yaml:"rain_probability"`
		HourMessages map[int]string `yaml:"hour_messages"`
	}
	if err := yaml.Unmarshal(data, &override); err != nil {
		return rules, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if override.TempLowC != nil {
		rules.TempLowC = *override.TempLowC
	}
	if override.TempHighC != nil {
		rules.TempHighC = *override.TempHighC
	}
	if override.RainPct != nil {
		rules.RainPct = *override.RainPct
	}
	if len(override.HourMessages) > 0 {
		rules.HourMessages = override.HourMessages
	}

	return rules, nil
}

// triggerHours returns the configured hours in ascending order.
func (r Rules) triggerHours() []int {
	hours := make([]int, 0, len(r.HourMessages))
	for h := range r.HourMessages {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}
