package handlers

import (
	"net/http"
	"strconv"

	"grain_dryer/internal/service"

	"github.com/gin-gonic/gin"
)

const errLoadNotifications = "failed to load notifications"

// @Summary      List notifications
// @Description  Alert history, newest first. Filter by read-state and type.
// @Tags         notifications
// @Produce      json
// @Param        unread  query  bool    false  "Only unread notifications"
// @Param        type    query  string  false  "Notification type"  Enums(CRITICAL,WARNING,STABLE)
// @Param        limit   query  int     false  "Maximum number of records"  example(100)
// @Success      200  {object}  map[string]interface{}  "count, notifications"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/notifications [get]
// @Security     BearerAuth
func (h *Handler) listNotifications(c *gin.Context) {
	filter := service.NotificationFilter{
		UnreadOnly: c.Query("unread") == "true",
		Type:       c.Query("type"),
	}
	if qs := c.Query("limit"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit': must be a non-negative integer"})
			return
		}
		filter.Limit = v
	}

	notifications, err := h.services.Notifications.List(c.Request.Context(), filter)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadNotifications, "notifications_list_failed", err, "type", filter.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":         len(notifications),
		"notifications": notifications,
	})
}

// @Summary      Mark one notification read
// @Description  Idempotent: marking an already-read or unknown id affects zero records.
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "Notification id"
// @Success      200  {object}  map[string]interface{}  "status, updated"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/notifications/{id}/read [patch]
// @Security     BearerAuth
func (h *Handler) markNotificationRead(c *gin.Context) {
	updated, err := h.services.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to mark notification read", "notification_mark_read_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"updated": updated,
	})
}

// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, updated"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/notifications/read-all [post]
// @Security     BearerAuth
func (h *Handler) markAllNotificationsRead(c *gin.Context) {
	updated, err := h.services.MarkAllRead(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to mark notifications read", "notification_mark_all_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"updated": updated,
	})
}
