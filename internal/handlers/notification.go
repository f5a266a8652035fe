package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sallatna/sallatna-backend/internal/pkg/errors"
	"github.com/sallatna/sallatna-backend/internal/requestdata"
	"github.com/sallatna/sallatna-backend/internal/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GET /api/notifications
func (nh *NotificationHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperrors.New(apperrors.ErrUnauthorized, "Not authenticated"))
		return
	}

	notifications, err := nh.notificationService.ListNotifications(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// POST /api/notifications/:id/read
func (nh *NotificationHandler) MarkRead(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperrors.New(apperrors.ErrUnauthorized, "Not authenticated"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid notification id"})
		return
	}

	notification, mErr := nh.notificationService.MarkRead(c.Request.Context(), rd.UserID, id)
	if mErr != nil {
		RespondError(c, mErr)
		return
	}
	c.JSON(http.StatusOK, notification)
}
