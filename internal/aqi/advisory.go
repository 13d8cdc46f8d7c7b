package aqi

// Advisory is a health advisory derived from an AQI value and an
// optional user health condition. Advisories are pure functions of
// their inputs and are rebuilt on every request; recomputation is
// cheaper than invalidation.
type Advisory struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Warning  string   `json:"warning,omitempty"`
	Color    Color    `json:"color"`
}

// HealthAdvisory derives an advisory for the given AQI value.
//
// When healthCondition is non-empty, messages from Moderate upward are
// suffixed with a personalized sentence and warnings from Unhealthy for
// Sensitive Groups upward are phrased against the condition. Below
// Moderate the condition is never mentioned: when air is good there is
// nothing to personalize.
func HealthAdvisory(aqi int, healthCondition string) Advisory {
	sensitive := ""
	if healthCondition != "" {
		sensitive = " People with " + healthCondition + " should take extra precautions."
	}

	switch Categorize(aqi) {
	case CategoryGood:
		return Advisory{
			Category: CategoryGood,
			Message:  "Air quality is ideal with minimal risk.",
			Color:    ColorGreen,
		}
	case CategoryModerate:
		return Advisory{
			Category: CategoryModerate,
			Message:  "Air quality is acceptable." + sensitive,
			Color:    ColorLime,
		}
	case CategoryUnhealthySensitive:
		warning := "Avoid prolonged outdoor exertion."
		if healthCondition != "" {
			warning = "Avoid prolonged outdoor exertion if you have " + healthCondition + "."
		}
		return Advisory{
			Category: CategoryUnhealthySensitive,
			Message:  "Air quality may affect sensitive individuals." + sensitive,
			Warning:  warning,
			Color:    ColorYellow,
		}
	case CategoryUnhealthy:
		warning := "Limit outdoor exposure."
		if healthCondition != "" {
			warning = "Limit outdoor exposure if you suffer from " + healthCondition + "."
		}
		return Advisory{
			Category: CategoryUnhealthy,
			Message:  "Everyone may begin to experience health effects." + sensitive,
			Warning:  warning,
			Color:    ColorOrange,
		}
	case CategoryVeryUnhealthy:
		return Advisory{
			Category: CategoryVeryUnhealthy,
			Message:  "Serious health effects possible for everyone." + sensitive,
			Warning:  "Avoid going outside unless absolutely necessary.",
			Color:    ColorRed,
		}
	default:
		return Advisory{
			Category: CategoryHazardous,
			Message:  "Emergency conditions: Everyone is more likely to be affected.",
			Warning:  "Remain indoors. Avoid all outdoor activity.",
			Color:    ColorMaroon,
		}
	}
}
