package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codingstreams/userhub/internal/auth"
	"github.com/codingstreams/userhub/internal/http/handlers"
	"github.com/codingstreams/userhub/internal/http/middlewares"
	"github.com/codingstreams/userhub/internal/repo/memory"
	"github.com/codingstreams/userhub/internal/security"
	"github.com/codingstreams/userhub/internal/service"
	"github.com/gin-gonic/gin"
)

// Full workflow against the real services and the in-memory repo: only the
// database and redis are substituted.

func setupApp(t *testing.T) (*gin.Engine, *memory.UsersRepo) {
	t.Helper()

	store := memory.NewUsersRepo()
	tokens := auth.NewManager("test-secret-key", time.Hour)
	hasher := security.NewBcryptHasher(4)

	authSvc := service.NewAuthService(store, tokens, hasher)
	userSvc := service.NewUserService(store, hasher, nil)

	authHandler := handlers.NewAuthHandler(authSvc)
	usersHandler := handlers.NewUsersHandler(userSvc)
	authRequired := middlewares.NewAuthMiddleware(tokens)

	r := gin.New()
	r.Use(middlewares.RequestID())

	r.POST("/api/auth/signup", authHandler.SignUp)
	r.POST("/api/auth/login", authHandler.Login)
	r.POST("/api/auth/verify", authHandler.Verify)

	users := r.Group("/api/users")
	users.Use(authRequired.RequireAuth())
	{
		users.GET("/:id", usersHandler.GetUser)
		users.POST("/:id/change-password", usersHandler.ChangePassword)
		users.PUT("/:id/update", usersHandler.UpdateUser)
	}

	return r, store
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

func doAuthed(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestEndToEndCredentialFlow(t *testing.T) {
	r, _ := setupApp(t)

	// signup
	w := doJSON(r, http.MethodPost, "/api/auth/signup", `{"firstName":"Jo","lastName":"Doe","email":"jo@x.com","password":"pw1-secret"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("signup got status %d, want 201, body=%s", w.Code, w.Body.String())
	}

	var signup tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &signup); err != nil {
		t.Fatalf("failed to unmarshal signup response: %v", err)
	}

	if signup.AccessToken == "" || signup.ExpiresIn <= 0 {
		t.Fatalf("unexpected signup payload: %+v", signup)
	}

	// the fresh token verifies
	w = doJSON(r, http.MethodPost, "/api/auth/verify?token="+signup.AccessToken, "")

	var verify struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &verify); err != nil {
		t.Fatalf("failed to unmarshal verify response: %v", err)
	}

	if !verify.Valid {
		t.Fatalf("token issued at signup should verify")
	}

	// a mangled token does not
	w = doJSON(r, http.MethodPost, "/api/auth/verify?token=mangled", "")

	if err := json.Unmarshal(w.Body.Bytes(), &verify); err != nil {
		t.Fatalf("failed to unmarshal verify response: %v", err)
	}

	if verify.Valid {
		t.Fatalf("mangled token should not verify")
	}

	// duplicate signup is a 400
	w = doJSON(r, http.MethodPost, "/api/auth/signup", `{"firstName":"Jo","lastName":"Doe","email":"jo@x.com","password":"pw1-secret"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup got status %d, want 400, body=%s", w.Code, w.Body.String())
	}

	// login with the right password
	w = doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"jo@x.com","password":"pw1-secret"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("login got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var login tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("failed to unmarshal login response: %v", err)
	}

	if login.AccessToken == "" {
		t.Fatalf("login expected accessToken, got empty")
	}

	// login with the wrong password
	w = doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"jo@x.com","password":"wrong"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login got status %d, want 401, body=%s", w.Code, w.Body.String())
	}
}

func TestEndToEndProfileFlow(t *testing.T) {
	r, store := setupApp(t)

	// seed an account and grab a token
	w := doJSON(r, http.MethodPost, "/api/auth/signup", `{"firstName":"Jo","lastName":"Doe","email":"jo@x.com","password":"pw1-secret"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("signup got status %d, body=%s", w.Code, w.Body.String())
	}

	var signup tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &signup); err != nil {
		t.Fatalf("failed to unmarshal signup response: %v", err)
	}
	token := signup.AccessToken

	u, err := store.GetByEmail(context.Background(), "jo@x.com")

	if err != nil {
		t.Fatalf("account not persisted: %v", err)
	}
	id := u.ID

	// profile routes demand a bearer token
	w = doAuthed(r, http.MethodGet, "/api/users/"+id, "", "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated profile read got %d, want 401", w.Code)
	}

	w = doAuthed(r, http.MethodGet, "/api/users/not-a-real-id", "", token)

	if w.Code != http.StatusNotFound {
		t.Fatalf("missing user got %d, want 404, body=%s", w.Code, w.Body.String())
	}

	// change password, then prove the old one stopped working
	w = doAuthed(r, http.MethodPost, "/api/users/"+id+"/change-password", `{"oldPassword":"pw1-secret","newPassword":"pw2-secret"}`, token)

	if w.Code != http.StatusOK {
		t.Fatalf("change password got %d, want 200, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"jo@x.com","password":"pw1-secret"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login with retired password got %d, want 401", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"jo@x.com","password":"pw2-secret"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("login with new password got %d, want 200, body=%s", w.Code, w.Body.String())
	}

	// rename via NAME mode
	w = doAuthed(r, http.MethodPut, "/api/users/"+id+"/update", `{"type":"NAME","firstName":"Joanna","lastName":"Doer"}`, token)

	if w.Code != http.StatusOK {
		t.Fatalf("update got %d, want 200, body=%s", w.Code, w.Body.String())
	}

	w = doAuthed(r, http.MethodGet, "/api/users/"+id, "", token)

	var profile struct {
		FirstName string `json:"firstName"`
		Email     string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to unmarshal profile: %v", err)
	}

	if profile.FirstName != "Joanna" {
		t.Fatalf("rename did not stick: %+v", profile)
	}

	if profile.Email != "jo@x.com" {
		t.Fatalf("NAME mode must not touch the email: %+v", profile)
	}
}
