package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ourwallet/ourwallet/internal/application"
	"github.com/ourwallet/ourwallet/internal/interface/middleware"
	"github.com/ourwallet/ourwallet/pkg/response"
	"github.com/ourwallet/ourwallet/pkg/validation"
)

type PartnerHandler struct {
	Svc    *application.PartnerService
	Logger *logrus.Logger
}

func NewPartnerHandler(svc *application.PartnerService, logger *logrus.Logger) *PartnerHandler {
	return &PartnerHandler{Svc: svc, Logger: logger}
}

// Invite POST /api/partners/invite
func (h *PartnerHandler) Invite(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.Invite(actorID, req.Email)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	case errors.Is(err, application.ErrSelfInvite):
		response.Error[any](c, http.StatusBadRequest, "you cannot invite yourself", nil)
		return
	case errors.Is(err, application.ErrAlreadyLinked):
		response.Error[any](c, http.StatusBadRequest, "invitation already exists", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("partner invite failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "invitation sent")
}

// Accept PUT /api/partners/accept
func (h *PartnerHandler) Accept(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	var req struct {
		PartnerID string `json:"partnerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.Accept(actorID, req.PartnerID)
	switch {
	case errors.Is(err, application.ErrNoInvitation):
		response.Error[any](c, http.StatusBadRequest, "no invitation found", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("partner accept failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "invitation accepted")
}

// Remove DELETE /api/partners/:partnerId
func (h *PartnerHandler) Remove(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Remove(actorID, c.Param("partnerId")); err != nil {
		h.Logger.WithError(err).Error("partner remove failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "partner removed")
}

// List GET /api/partners
func (h *PartnerHandler) List(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	views, err := h.Svc.List(actorID)
	if err != nil {
		h.Logger.WithError(err).Error("partner list failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, toPartnerDTOs(views), "partners")
}
