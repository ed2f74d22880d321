package models

// NotificationKind classifies an advisory notification
type NotificationKind string

const (
	NotificationWeatherAlert   NotificationKind = "weather_alert"
	NotificationRecommendation NotificationKind = "recommendation"
)

// NotificationPriority indicates how urgent a notification is
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// Notification is a single advisory generated by the rule engine.
// Notifications are generated fresh per evaluation and never persisted
// or deduplicated; suppression is the delivery layer's concern.
type Notification struct {
	Kind     NotificationKind     `json:"type"`
	Priority NotificationPriority `json:"priority"`
	Message  string               `json:"message"`
}
