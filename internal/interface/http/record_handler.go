package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ourwallet/ourwallet/internal/application"
	"github.com/ourwallet/ourwallet/internal/interface/middleware"
	"github.com/ourwallet/ourwallet/pkg/response"
	"github.com/ourwallet/ourwallet/pkg/validation"
)

type RecordHandler struct {
	Records  *application.RecordService
	Partners *application.PartnerService
	Logger   *logrus.Logger
}

func NewRecordHandler(records *application.RecordService, partners *application.PartnerService, logger *logrus.Logger) *RecordHandler {
	return &RecordHandler{Records: records, Partners: partners, Logger: logger}
}

type recordRequest struct {
	Amount      *float64  `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Spender     string    `json:"spender"`
	Date        time.Time `json:"date"`
}

func (r recordRequest) toInput() application.RecordInput {
	return application.RecordInput{
		Amount:      r.Amount,
		Type:        r.Type,
		Category:    r.Category,
		Description: r.Description,
		Spender:     r.Spender,
		Date:        r.Date,
	}
}

// parseDate accepts RFC3339 or bare dates from query params.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// resolveOwners validates the requested userIds against the actor's accepted
// partners; the services never see an unauthorized owner set.
func (h *RecordHandler) resolveOwners(c *gin.Context, actorID string) ([]string, bool) {
	owners, err := h.Partners.ResolveOwnerSet(actorID, splitIDs(c.Query("userIds")))
	if err != nil {
		h.Logger.WithError(err).Error("owner set resolution failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return nil, false
	}
	return owners, true
}

// List GET /api/records
func (h *RecordHandler) List(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	owners, ok := h.resolveOwners(c, actorID)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	res, err := h.Records.List(actorID, application.ListQuery{
		OwnerIDs: owners,
		Type:     c.Query("type"),
		Category: c.Query("category"),
		From:     parseDate(c.Query("startDate")),
		To:       parseDate(c.Query("endDate")),
		SortBy:   c.DefaultQuery("sortBy", "date"),
		Order:    c.DefaultQuery("order", "desc"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.Logger.WithError(err).Error("record list failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}

	records := make([]application.RecordDTO, len(res.Records))
	for i, r := range res.Records {
		records[i] = application.NewRecordDTO(r)
	}
	response.Success(c, http.StatusOK, gin.H{
		"records":      records,
		"totalPages":   res.TotalPages,
		"currentPage":  res.CurrentPage,
		"totalRecords": res.TotalRecords,
	}, "records")
}

// Create POST /api/records
func (h *RecordHandler) Create(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	rec, err := h.Records.Create(actorID, req.toInput())
	switch {
	case errors.Is(err, application.ErrInvalidRecord):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("record create failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusCreated, application.NewRecordDTO(*rec), "record created")
}

// Delete DELETE /api/records/:id
func (h *RecordHandler) Delete(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	id := c.Param("id")

	err := h.Records.Delete(actorID, id)
	switch {
	case errors.Is(err, application.ErrRecordNotFound):
		response.Error[any](c, http.StatusNotFound, "record not found", nil)
		return
	case errors.Is(err, application.ErrNotRecordOwner):
		response.Error[any](c, http.StatusUnauthorized, "user not authorized", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("record delete failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id}, "record deleted")
}

// Import POST /api/records/import
func (h *RecordHandler) Import(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	var reqs []recordRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload: expected array of records", nil)
		return
	}

	inputs := make([]application.RecordInput, len(reqs))
	for i, r := range reqs {
		inputs[i] = r.toInput()
	}

	recs, err := h.Records.BulkImport(actorID, inputs)
	switch {
	case errors.Is(err, application.ErrEmptyBatch):
		response.Error[any](c, http.StatusBadRequest, "invalid payload: expected array of records", nil)
		return
	case errors.Is(err, application.ErrInvalidRecord):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("record import failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}

	out := make([]application.RecordDTO, len(recs))
	for i, r := range recs {
		out[i] = application.NewRecordDTO(r)
	}
	response.Success(c, http.StatusCreated, out, "records imported")
}

// DeleteMultiple POST /api/records/delete-multiple
func (h *RecordHandler) DeleteMultiple(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	var req struct {
		IDs []string `json:"ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "please provide an array of record ids", nil)
		return
	}

	count, err := h.Records.BulkDelete(actorID, req.IDs)
	if err != nil {
		h.Logger.WithError(err).Error("bulk delete failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": count}, "records deleted")
}
