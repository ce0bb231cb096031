package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ourwallet/ourwallet/config"
	"github.com/ourwallet/ourwallet/internal/domain/entity"
	"github.com/ourwallet/ourwallet/internal/domain/repository"
	"github.com/ourwallet/ourwallet/pkg/helpers"
	"github.com/ourwallet/ourwallet/pkg/mailer"
	tpl "github.com/ourwallet/ourwallet/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrEmailTaken         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrEmailSendFailed    = errors.New("email could not be sent")
)

const tokenBytes = 20

// EmailPublisher enqueues outbound email jobs. *helpers.RabbitPublisher
// satisfies it; tests substitute a fake.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService implements registration, login, email verification and the
// password reset flow.
type AuthService struct {
	Users    repository.UserRepository
	Partners repository.PartnerLinkRepository
	JWT      *helpers.JWTManager
	Queue    EmailPublisher
	Cfg      *config.Config
	Logger   *logrus.Logger
}

func NewAuthService(users repository.UserRepository, partners repository.PartnerLinkRepository,
	jwt *helpers.JWTManager, queue EmailPublisher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Partners: partners, JWT: jwt, Queue: queue, Cfg: cfg, Logger: logger}
}

func (s *AuthService) sendTemplate(ctx context.Context, template, to, name, link string) error {
	if s.Cfg != nil && !s.Cfg.MailSendEnabled {
		return nil
	}
	if s.Queue == nil {
		return ErrEmailSendFailed
	}
	job := mailer.EmailJob{
		To:       to,
		Template: template,
		Data:     map[string]any{"Name": name, "ActionURL": link},
	}
	if err := s.Queue.PublishJSON(ctx, job); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("template", template).Error("email enqueue failed")
		}
		return ErrEmailSendFailed
	}
	return nil
}

// Register creates an unverified user and mails a verification link.
// On a failed email dispatch the user row is kept so the account can be
// recovered through resend-verification; the caller still sees an error.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if existing, err := s.Users.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	token, err := helpers.NewRandomToken(tokenBytes)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:             email,
		Password:          hash,
		Name:              name,
		IsVerified:        false,
		VerificationToken: token,
		Spenders:          []string{entity.DefaultSpender},
	}
	if err := s.Users.Create(u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.sendTemplate(ctx, tpl.VerifyEmail, u.Email, u.Name, s.Cfg.VerifyEmailLink(token)); err != nil {
		return u, err
	}
	return u, nil
}

// VerifyEmail marks the matching user verified and burns the token.
func (s *AuthService) VerifyEmail(token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	u, err := s.Users.GetByVerificationToken(token)
	if err != nil {
		return ErrInvalidToken
	}
	u.IsVerified = true
	u.VerificationToken = ""
	return s.Users.Update(u)
}

// LoginResult carries the authenticated identity, its partner list and the
// bearer token.
type LoginResult struct {
	User     *entity.User
	Partners []entity.PartnerView
	Token    string
	Expires  time.Time
}

// Login checks credentials and verification state. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, ErrEmailNotVerified
	}

	partners, err := s.Partners.ListViews(u.ID)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Partners: partners, Token: token, Expires: exp}, nil
}

// ForgotPassword stores a digested reset token with a 10 minute window and
// mails the raw token. A failed dispatch clears the fields so a retry starts
// clean.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(email)
	if err != nil || u == nil {
		return ErrUserNotFound
	}

	raw, err := helpers.NewRandomToken(tokenBytes)
	if err != nil {
		return err
	}
	u.ResetPasswordToken = helpers.DigestToken(raw)
	u.ResetPasswordExpires = time.Now().Add(s.Cfg.ResetTokenTTL)
	if err := s.Users.Update(u); err != nil {
		return err
	}

	if err := s.sendTemplate(ctx, tpl.ResetPassword, u.Email, u.Name, s.Cfg.ResetPasswordLink(raw)); err != nil {
		u.ResetPasswordToken = ""
		u.ResetPasswordExpires = time.Time{}
		if uerr := s.Users.Update(u); uerr != nil && s.Logger != nil {
			s.Logger.WithError(uerr).Warn("failed to clear reset token after send failure")
		}
		return err
	}
	return nil
}

// ResetPassword accepts the raw token from the emailed link. Both the digest
// match and the expiry check must pass; success replaces the password and
// clears the reset fields, making the token single-use.
func (s *AuthService) ResetPassword(rawToken, newPassword string) error {
	if rawToken == "" {
		return ErrInvalidToken
	}
	u, err := s.Users.GetByResetToken(helpers.DigestToken(rawToken))
	if err != nil {
		return ErrInvalidToken
	}
	if !u.ResetPasswordExpires.After(time.Now()) {
		return ErrInvalidToken
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpires = time.Time{}
	return s.Users.Update(u)
}

// ResendVerification regenerates the verification token and re-sends the
// email. The token is cleared again when the send fails.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(email)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}

	token, err := helpers.NewRandomToken(tokenBytes)
	if err != nil {
		return err
	}
	u.VerificationToken = token
	if err := s.Users.Update(u); err != nil {
		return err
	}

	if err := s.sendTemplate(ctx, tpl.VerifyEmail, u.Email, u.Name, s.Cfg.VerifyEmailLink(token)); err != nil {
		u.VerificationToken = ""
		if uerr := s.Users.Update(u); uerr != nil && s.Logger != nil {
			s.Logger.WithError(uerr).Warn("failed to clear verification token after send failure")
		}
		return err
	}
	return nil
}
