package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"grain_dryer/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errLoadLatest  = "failed to load latest reading"
	errLoadHistory = "failed to load reading history"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// IngestRequest is an exported model for Swagger docs of the ingestion payload.
type IngestRequest struct {
	// Device identifier; defaults to the single known dryer.
	DeviceID string `json:"deviceId" example:"RGD-001"`
	// Temperature in °C (required)
	Temperature float64 `json:"temperature" example:"55"`
	// Relative humidity in % (required)
	Humidity float64 `json:"humidity" example:"40"`
	// Grain moisture per probe in %
	Moisture1 float64 `json:"moisture1" example:"12"`
	Moisture2 float64 `json:"moisture2" example:"12"`
	// Chamber weight per cell in kg
	Weight1 float64 `json:"weight1" example:"10"`
	Weight2 float64 `json:"weight2" example:"10"`
	// Dryer status. Allowed: Idle, Drying, Completed, Error, Warning
	Status string `json:"status" example:"Drying"`
}

// @Summary      Ingest a sensor reading
// @Description  Accepts one reading from the dryer or a gateway, persists it, evaluates thresholds and fans it out to live subscribers. The live broadcast happens even when persistence fails.
// @Tags         sensor
// @Accept       json
// @Produce      json
// @Param        body  body   IngestRequest  true  "Reading payload"
// @Success      201   {object}  map[string]interface{}  "status, data"
// @Failure      400   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/sensor/data [post]
func (h *Handler) ingestReading(c *gin.Context) {
	var input service.ReadingInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	stored, err := h.services.IngestReading(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Storage failure: the reading was still broadcast live, but the
		// caller must know it was not persisted.
		h.logAndJSONError(c, http.StatusServiceUnavailable, "reading not persisted", "ingest_persist_failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "ok",
		"data":   stored,
	})
}

// @Summary      Latest reading
// @Tags         sensor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "data (null when no readings yet)"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sensor/latest [get]
// @Security     BearerAuth
func (h *Handler) latestReading(c *gin.Context) {
	latest, err := h.services.History.Latest(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadLatest, "sensor_latest_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": latest})
}

// @Summary      Reading history
// @Description  Most recent N readings, newest first. Limit defaults to 100 and is clamped to 1000.
// @Tags         sensor
// @Produce      json
// @Param        limit  query   int  false  "Maximum number of readings"  example(100)
// @Success      200  {object}  map[string]interface{}  "count, data"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sensor/history [get]
// @Security     BearerAuth
func (h *Handler) readingHistory(c *gin.Context) {
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit': must be a non-negative integer"})
			return
		}
		limit = v
	}

	readings, err := h.services.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadHistory, "sensor_history_failed", err, "limit", limit)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(readings),
		"data":  readings,
	})
}
