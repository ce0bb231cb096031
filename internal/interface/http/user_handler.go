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

type UserHandler struct {
	Spenders *application.SpenderService
	Logger   *logrus.Logger
}

func NewUserHandler(spenders *application.SpenderService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Spenders: spenders, Logger: logger}
}

// AddSpender POST /api/users/spenders
func (h *UserHandler) AddSpender(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	var req struct {
		Spender string `json:"spender" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "spender name is required", validation.ToDetails(err))
		return
	}

	spenders, err := h.Spenders.Add(actorID, req.Spender)
	switch {
	case errors.Is(err, application.ErrSpenderExists):
		response.Error[any](c, http.StatusBadRequest, "spender already exists", nil)
		return
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("add spender failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"spenders": spenders}, "spender added")
}

// RemoveSpender DELETE /api/users/spenders/:name
func (h *UserHandler) RemoveSpender(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	name := c.Param("name")

	spenders, err := h.Spenders.Remove(actorID, name)
	switch {
	case errors.Is(err, application.ErrSpenderNotFound):
		response.Error[any](c, http.StatusNotFound, "spender not found", nil)
		return
	case errors.Is(err, application.ErrLastSpender):
		response.Error[any](c, http.StatusBadRequest, "cannot remove the last spender", nil)
		return
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("remove spender failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"spenders": spenders}, "spender removed")
}
