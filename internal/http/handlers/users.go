package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/codingstreams/userhub/internal/config"
	"github.com/codingstreams/userhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type ProfileService interface {
	GetByID(ctx context.Context, id string) (user.Profile, error)
	ChangePassword(ctx context.Context, id string, req user.ChangePasswordRequest) error
	UpdateInfo(ctx context.Context, id string, req user.UpdateRequest) (user.Profile, error)
}

type UsersHandler struct {
	svc ProfileService
}

func NewUsersHandler(svc ProfileService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) GetUser(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	profile, err := h.svc.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (h *UsersHandler) ChangePassword(ctx *gin.Context) {
	id := ctx.Param("id")

	var req user.ChangePasswordRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// bcrypt runs twice here (verify + re-hash), give it some headroom
	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	err := h.svc.ChangePassword(cctx, id, req)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, user.ErrInvalidCredentials):
			RespondBadRequest(ctx, "invalid_credentials", "Old password is incorrect.", nil)
		default:
			RespondInternal(ctx, "Could not change password")
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Password changed successfully",
	})
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id := ctx.Param("id")

	var req user.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	profile, err := h.svc.UpdateInfo(cctx, id, req)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, user.ErrEmailTaken):
			RespondBadRequest(ctx, "email_taken", "Email is already in use.", nil)
		case errors.Is(err, user.ErrInvalidUpdateType):
			RespondBadRequest(ctx, "invalid_update_type", "Update type must be NAME or EMAIL.", nil)
		default:
			RespondInternal(ctx, "Could not update user")
		}
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
