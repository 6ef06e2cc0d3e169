package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/emanuelrivas243/streamia-server/data_access"
	"github.com/emanuelrivas243/streamia-server/logger"
	"github.com/emanuelrivas243/streamia-server/models"
)

const resetTokenLifetime = 15 * time.Minute

// UserStore is the credential store as the auth service sees it.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MailSender delivers transactional mail.
type MailSender interface {
	SendWelcome(to, firstName string) error
	SendPasswordReset(to, token string) error
}

type AuthService struct {
	users  UserStore
	tokens *TokenService
	mailer MailSender
}

func NewAuthService(users UserStore, tokens *TokenService, mailer MailSender) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
	}
}

// Register creates an account and issues a session token. The welcome mail
// is best-effort: a delivery failure is logged, not surfaced.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrAccountExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Email:     email,
		Password:  string(hashedPassword),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if err == data_access.ErrDuplicateKey {
			return nil, "", ErrAccountExists
		}
		return nil, "", err
	}

	token, _, err := s.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", err
	}

	if err := s.mailer.SendWelcome(user.Email, user.FirstName); err != nil {
		logger.Warn("welcome mail delivery failed", "email", user.Email, "error", err)
	}

	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.UpdateProfile(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, id primitive.ObjectID, req *models.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, string(hashedPassword))
}

// ForgotPassword starts a password reset. An unknown email returns success
// so callers cannot enumerate accounts; a mail delivery failure for a known
// account is surfaced because the user has no other way to recover.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	expiry := time.Now().Add(resetTokenLifetime)
	if err := s.users.SetResetToken(ctx, user.ID, hashResetToken(token), expiry); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(user.Email, token); err != nil {
		logger.Error("reset mail delivery failed", "email", user.Email, "error", err)
		return ErrMailDelivery
	}
	return nil
}

// ResetPassword completes a reset. The presented token is hashed and looked
// up; the plaintext token is never stored.
func (s *AuthService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	user, err := s.users.FindByResetTokenHash(ctx, hashResetToken(req.Token))
	if err != nil {
		return err
	}
	if user == nil || time.Now().After(user.ResetTokenExpiry) {
		return ErrInvalidToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// UpdatePassword also clears the reset token, so it cannot be replayed.
	return s.users.UpdatePassword(ctx, user.ID, string(hashedPassword))
}

// DeleteAccount is irreversible and requires the current password again,
// independently of the session token.
func (s *AuthService) DeleteAccount(ctx context.Context, id primitive.ObjectID, password string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return s.users.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
