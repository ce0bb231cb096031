package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ourwallet/ourwallet/internal/application"
	"github.com/ourwallet/ourwallet/internal/domain/entity"
	"github.com/ourwallet/ourwallet/pkg/response"
	"github.com/ourwallet/ourwallet/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type partnerDTO struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Status      string `json:"status"`
	InitiatedBy string `json:"initiatedBy"`
}

func toPartnerDTOs(views []entity.PartnerView) []partnerDTO {
	out := make([]partnerDTO, len(views))
	for i, v := range views {
		out[i].User.ID = v.CounterpartyID
		out[i].User.Name = v.CounterpartyName
		out[i].User.Email = v.CounterpartyEmail
		out[i].Status = string(v.Status)
		out[i].InitiatedBy = v.InitiatedBy
	}
	return out
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "please add all fields", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusBadRequest, "user already exists", nil)
		return
	case errors.Is(err, application.ErrEmailSendFailed):
		// The account exists but the verification mail never left; the user
		// can recover via resend-verification.
		response.Error[any](c, http.StatusInternalServerError, "email could not be sent", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"message": "please check your email to verify your account",
	}, "registered")
}

// VerifyEmail GET /api/auth/verify/:token
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	err := h.Svc.VerifyEmail(c.Param("token"))
	switch {
	case errors.Is(err, application.ErrInvalidToken):
		response.Error[any](c, http.StatusBadRequest, "invalid token", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("verify email failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "email verified successfully, you can now login")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	case errors.Is(err, application.ErrEmailNotVerified):
		response.Error[any](c, http.StatusUnauthorized, "please verify your email first", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":       res.User.ID,
		"name":     res.User.Name,
		"email":    res.User.Email,
		"partners": toPartnerDTOs(res.Partners),
		"token":    res.Token,
	}, "login successful")
}

// ForgotPassword POST /api/auth/forgotpassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.ForgotPassword(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	case errors.Is(err, application.ErrEmailSendFailed):
		response.Error[any](c, http.StatusInternalServerError, "email could not be sent", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("forgot password failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "email sent")
}

// ResetPassword PUT /api/auth/resetpassword/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.ResetPassword(c.Param("token"), req.Password)
	switch {
	case errors.Is(err, application.ErrInvalidToken):
		response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("reset password failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password updated")
}

// ResendVerification POST /api/auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.ResendVerification(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	case errors.Is(err, application.ErrAlreadyVerified):
		response.Error[any](c, http.StatusBadRequest, "email already verified", nil)
		return
	case errors.Is(err, application.ErrEmailSendFailed):
		response.Error[any](c, http.StatusInternalServerError, "email could not be sent", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("resend verification failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "verification email sent")
}
