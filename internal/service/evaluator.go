package service

import (
	"fmt"

	"grain_dryer/internal/models"
)

// Evaluate checks one reading against the configured bounds and returns
// one alert candidate per breached metric. Pure: no I/O, no state,
// every rule applied independently.
func Evaluate(r models.Reading, t models.Thresholds) []models.AlertCandidate {
	var alerts []models.AlertCandidate

	// Temperature checks
	if r.Temperature > t.TemperatureMax {
		alerts = append(alerts, models.AlertCandidate{
			Severity: models.NotificationCritical,
			Metric:   models.MetricTemperatureHigh,
			Title:    "High Temperature Alert",
			Message:  fmt.Sprintf("Temperature (%g°C) exceeded maximum (%g°C)", r.Temperature, t.TemperatureMax),
		})
	} else if r.Temperature < t.TemperatureMin {
		alerts = append(alerts, models.AlertCandidate{
			Severity: models.NotificationWarning,
			Metric:   models.MetricTemperatureLow,
			Title:    "Low Temperature Warning",
			Message:  fmt.Sprintf("Temperature (%g°C) below minimum (%g°C)", r.Temperature, t.TemperatureMin),
		})
	}

	// Humidity check
	if r.Humidity > t.HumidityMax {
		alerts = append(alerts, models.AlertCandidate{
			Severity: models.NotificationCritical,
			Metric:   models.MetricHumidityHigh,
			Title:    "High Humidity Alert",
			Message:  fmt.Sprintf("Humidity (%g%%) exceeded maximum (%g%%)", r.Humidity, t.HumidityMax),
		})
	}

	// Moisture checks, one per probe
	if r.Moisture1 > t.Moisture1Target {
		alerts = append(alerts, models.AlertCandidate{
			Severity: models.NotificationWarning,
			Metric:   models.MetricMoisture1High,
			Title:    "High Moisture Content - Sensor 1",
			Message:  fmt.Sprintf("Moisture 1 (%g%%) above target (%g%%)", r.Moisture1, t.Moisture1Target),
		})
	}
	if r.Moisture2 > t.Moisture2Target {
		alerts = append(alerts, models.AlertCandidate{
			Severity: models.NotificationWarning,
			Metric:   models.MetricMoisture2High,
			Title:    "High Moisture Content - Sensor 2",
			Message:  fmt.Sprintf("Moisture 2 (%g%%) above target (%g%%)", r.Moisture2, t.Moisture2Target),
		})
	}

	// Weight checks, one per cell
	if r.Weight1 > t.Weight1Max {
		alerts = append(alerts, models.AlertCandidate{
			Severity: models.NotificationCritical,
			Metric:   models.MetricWeight1Overload,
			Title:    "Weight Overload - Chamber 1",
			Message:  fmt.Sprintf("Weight 1 (%gkg) exceeded maximum (%gkg)", r.Weight1, t.Weight1Max),
		})
	}
	if r.Weight2 > t.Weight2Max {
		alerts = append(alerts, models.AlertCandidate{
			Severity: models.NotificationCritical,
			Metric:   models.MetricWeight2Overload,
			Title:    "Weight Overload - Chamber 2",
			Message:  fmt.Sprintf("Weight 2 (%gkg) exceeded maximum (%gkg)", r.Weight2, t.Weight2Max),
		})
	}

	return alerts
}
