package models

import "time"

// Notification types. STABLE is the rate-limited "all clear" record.
const (
	NotificationCritical = "CRITICAL"
	NotificationWarning  = "WARNING"
	NotificationStable   = "STABLE"
)

// SystemLabel tags every notification with the originating system.
const SystemLabel = "Rice Grain Dryer"

// Metric keys identifying which measurement triggered an alert.
const (
	MetricTemperatureHigh = "temperature-high"
	MetricTemperatureLow  = "temperature-low"
	MetricHumidityHigh    = "humidity-high"
	MetricMoisture1High   = "moisture1-high"
	MetricMoisture2High   = "moisture2-high"
	MetricWeight1Overload = "weight1-overload"
	MetricWeight2Overload = "weight2-overload"
)

// Thresholds holds the safe/target bounds per metric. Loaded once at
// process start and read-only afterwards.
type Thresholds struct {
	TemperatureMax  float64 `json:"temperatureMax" mapstructure:"temperature_max"`
	TemperatureMin  float64 `json:"temperatureMin" mapstructure:"temperature_min"`
	HumidityMax     float64 `json:"humidityMax" mapstructure:"humidity_max"`
	Moisture1Target float64 `json:"moisture1Target" mapstructure:"moisture1_target"`
	Moisture1Min    float64 `json:"moisture1Min" mapstructure:"moisture1_min"`
	Moisture2Target float64 `json:"moisture2Target" mapstructure:"moisture2_target"`
	Moisture2Min    float64 `json:"moisture2Min" mapstructure:"moisture2_min"`
	Weight1Max      float64 `json:"weight1Max" mapstructure:"weight1_max"`
	Weight2Max      float64 `json:"weight2Max" mapstructure:"weight2_max"`
}

// DefaultThresholds are the operational bounds for the dryer.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TemperatureMax:  60,
		TemperatureMin:  50,
		HumidityMax:     65,
		Moisture1Target: 14,
		Moisture1Min:    10,
		Moisture2Target: 14,
		Moisture2Min:    10,
		Weight1Max:      25,
		Weight2Max:      25,
	}
}

// AlertCandidate describes one breach found during an evaluation pass.
// Candidates are ephemeral; surviving ones become Notifications.
type AlertCandidate struct {
	Severity string // CRITICAL | WARNING
	Metric   string // e.g. temperature-high
	Title    string
	Message  string // embeds the observed value and the bound
}

// SensorSnapshot is the point-in-time copy of the six metrics embedded
// in a notification. It is a value copy, not a reference to a reading.
type SensorSnapshot struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Moisture1   float64 `json:"moisture1"`
	Moisture2   float64 `json:"moisture2"`
	Weight1     float64 `json:"weight1"`
	Weight2     float64 `json:"weight2"`
}

// Snapshot copies the metric values out of a reading.
func (r Reading) Snapshot() SensorSnapshot {
	return SensorSnapshot{
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Moisture1:   r.Moisture1,
		Moisture2:   r.Moisture2,
		Weight1:     r.Weight1,
		Weight2:     r.Weight2,
	}
}

// Notification is the durable, user-visible alert record. Everything but
// IsRead is immutable after creation; IsRead only transitions false→true.
type Notification struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"` // CRITICAL | WARNING | STABLE
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	System     string         `json:"system"`
	SensorData SensorSnapshot `json:"sensorData"`
	Thresholds Thresholds     `json:"thresholds"`
	IsRead     bool           `json:"isRead"`
	CreatedAt  time.Time      `json:"createdAt"`
}
