package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/codingstreams/userhub/internal/config"
	"github.com/codingstreams/userhub/internal/domain/user"
	"github.com/codingstreams/userhub/internal/service"
	"github.com/gin-gonic/gin"
)

type CredentialService interface {
	SignUp(ctx context.Context, req user.SignUpRequest) (service.TokenPair, error)
	Login(ctx context.Context, req user.LoginRequest) (service.TokenPair, error)
	VerifyToken(token string) bool
}

type AuthHandler struct {
	svc CredentialService
}

func NewAuthHandler(svc CredentialService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	pair, err := h.svc.SignUp(cctx, req)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequest(ctx, "email_taken", "Email is already in use.", nil)
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, pair)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	pair, err := h.svc.Login(cctx, req)

	if err != nil {
		// unknown email and wrong password both read as 401, so the
		// endpoint cannot be used to probe which emails exist
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, user.ErrInvalidCredentials) {
			RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
			return
		}

		RespondInternal(ctx, "Could not log in")
		return
	}

	ctx.JSON(http.StatusOK, pair)
}

// Verify reports token validity as a plain boolean; it never fails.
func (h *AuthHandler) Verify(ctx *gin.Context) {
	token := ctx.Query("token")

	ctx.JSON(http.StatusOK, gin.H{
		"valid": h.svc.VerifyToken(token),
	})
}
