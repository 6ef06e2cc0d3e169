package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emanuelrivas243/streamia-server/middleware"
	"github.com/emanuelrivas243/streamia-server/models"
	"github.com/emanuelrivas243/streamia-server/services"
)

//
// In-memory collaborators
//

type memoryUsers struct {
	users map[primitive.ObjectID]*models.User
}

func (m *memoryUsers) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUsers) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Age != nil {
		u.Age = *req.Age
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUsers) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	if u, ok := m.users[id]; ok {
		u.Password = passwordHash
		u.ResetTokenHash = ""
		u.ResetTokenExpiry = time.Time{}
	}
	return nil
}

func (m *memoryUsers) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error {
	if u, ok := m.users[id]; ok {
		u.ResetTokenHash = tokenHash
		u.ResetTokenExpiry = expiry
	}
	return nil
}

func (m *memoryUsers) FindByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	for _, u := range m.users {
		if u.ResetTokenHash != "" && u.ResetTokenHash == tokenHash {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.users, id)
	return nil
}

type noopMailer struct{}

func (noopMailer) SendWelcome(to, firstName string) error   { return nil }
func (noopMailer) SendPasswordReset(to, token string) error { return nil }

func setupUserRoutes(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := services.NewTokenService("test-secret", 2*time.Hour)
	require.NoError(t, err)
	authService := services.NewAuthService(&memoryUsers{users: map[primitive.ObjectID]*models.User{}}, tokens, noopMailer{})

	authController := NewAuthController(authService)
	userController := NewUserController(authService)

	r := gin.New()
	users := r.Group("/api/users")
	{
		users.POST("/register", authController.Register)
		users.POST("/login", authController.Login)
		users.GET("/me", middleware.AuthMiddleware(tokens), userController.Me)
	}
	return r
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const registerBody = `{
	"first_name": "Ana",
	"last_name": "Ruiz",
	"age": 20,
	"email": "ana@example.com",
	"password": "Abcd1234!",
	"confirm_password": "Abcd1234!"
}`

func TestRegisterLoginMeFlow(t *testing.T) {
	r := setupUserRoutes(t)

	// Register.
	w := doJSON(r, http.MethodPost, "/api/users/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.False(t, registered.User.ID.IsZero())
	assert.NotContains(t, w.Body.String(), "password", "account payload must never carry the password")

	// Login with the same credentials.
	w = doJSON(r, http.MethodPost, "/api/users/login",
		`{"email": "ana@example.com", "password": "Abcd1234!"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loggedIn struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	require.NotEmpty(t, loggedIn.Token)

	// Profile with the token.
	w = doJSON(r, http.MethodGet, "/api/users/me", "", loggedIn.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Ana", profile.FirstName)
	assert.Equal(t, "ana@example.com", profile.Email)

	// Without the token.
	w = doJSON(r, http.MethodGet, "/api/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_ValidationMessages(t *testing.T) {
	r := setupUserRoutes(t)

	// Mismatched confirmation.
	w := doJSON(r, http.MethodPost, "/api/users/register", `{
		"first_name": "Ana", "last_name": "Ruiz", "age": 20,
		"email": "ana@example.com",
		"password": "Abcd1234!", "confirm_password": "different"
	}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "passwords do not match")

	// Invalid email.
	w = doJSON(r, http.MethodPost, "/api/users/register", `{
		"first_name": "Ana", "last_name": "Ruiz", "age": 20,
		"email": "not-an-email",
		"password": "Abcd1234!", "confirm_password": "Abcd1234!"
	}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "valid email")
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	r := setupUserRoutes(t)

	w := doJSON(r, http.MethodPost, "/api/users/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/users/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}
