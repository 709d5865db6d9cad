package handlers

import (
	"errors"
	"net/http"

	"grain_dryer/internal/service"

	"github.com/gin-gonic/gin"
)

// Partial profile update; absent fields keep their current value.
type profileRequest struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	user, err := h.services.Profile.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load profile", "profile_get_failed", err, "userId", userID)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Update profile
// @Description  Partial update: absent fields keep their current value.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body   profileRequest  true  "Profile fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/profile [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input profileRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Profile.Update(c.Request.Context(), userID, service.ProfileParams{
		Username: input.Username,
		Fullname: input.Fullname,
		Email:    input.Email,
		Avatar:   input.Avatar,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to update profile", "profile_update_failed", err, "userId", userID)
		return
	}
	c.JSON(http.StatusOK, user)
}
