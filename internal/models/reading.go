package models

import "time"

// Dryer status values reported by the device.
const (
	StatusIdle      = "Idle"
	StatusDrying    = "Drying"
	StatusCompleted = "Completed"
	StatusError     = "Error"
	StatusWarning   = "Warning"
)

// DefaultDeviceID identifies the single dryer unit in this deployment.
const DefaultDeviceID = "RGD-001"

// Reading is one timestamped snapshot of all sensor channels from the
// drying device. Immutable once stored.
type Reading struct {
	ID          string    `json:"id"`
	DeviceID    string    `json:"deviceId"`
	Temperature float64   `json:"temperature"` // °C
	Humidity    float64   `json:"humidity"`    // %
	Moisture1   float64   `json:"moisture1"`   // %
	Moisture2   float64   `json:"moisture2"`   // %
	Weight1     float64   `json:"weight1"`     // kg
	Weight2     float64   `json:"weight2"`     // kg
	Status      string    `json:"status"`      // Idle | Drying | Completed | Error | Warning
	Timestamp   time.Time `json:"timestamp"`
}

// ReadingView is the wire payload broadcast to live subscribers.
// Internal identifiers are deliberately left out.
type ReadingView struct {
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Moisture1   float64   `json:"moisture1"`
	Moisture2   float64   `json:"moisture2"`
	Weight1     float64   `json:"weight1"`
	Weight2     float64   `json:"weight2"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// View projects a stored reading onto its broadcast shape.
func (r Reading) View() ReadingView {
	return ReadingView{
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Moisture1:   r.Moisture1,
		Moisture2:   r.Moisture2,
		Weight1:     r.Weight1,
		Weight2:     r.Weight2,
		Status:      r.Status,
		Timestamp:   r.Timestamp,
	}
}

// ValidStatus reports whether s is one of the known dryer statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusIdle, StatusDrying, StatusCompleted, StatusError, StatusWarning:
		return true
	}
	return false
}
