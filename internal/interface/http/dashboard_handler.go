package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ourwallet/ourwallet/internal/application"
	"github.com/ourwallet/ourwallet/internal/interface/middleware"
	"github.com/ourwallet/ourwallet/pkg/response"
)

type DashboardHandler struct {
	Dashboards *application.DashboardService
	Partners   *application.PartnerService
	Logger     *logrus.Logger
}

func NewDashboardHandler(dashboards *application.DashboardService, partners *application.PartnerService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Dashboards: dashboards, Partners: partners, Logger: logger}
}

// Get GET /api/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	owners, err := h.Partners.ResolveOwnerSet(actorID, splitIDs(c.Query("userIds")))
	if err != nil {
		h.Logger.WithError(err).Error("owner set resolution failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}

	dash, err := h.Dashboards.Dashboard(c.Request.Context(), owners)
	if err != nil {
		h.Logger.WithError(err).Error("dashboard build failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, dash, "dashboard")
}
