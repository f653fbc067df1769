package service

import (
	"context"
	"time"

	"github.com/codingstreams/userhub/internal/domain/user"
)

type UserService struct {
	store  UserStore
	hasher PasswordHasher
	cache  ProfileCache // optional; nil disables caching
}

func NewUserService(store UserStore, hasher PasswordHasher, cache ProfileCache) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		cache:  cache,
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (user.Profile, error) {
	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, id); ok {
			return p, nil
		}
	}

	u, err := s.store.GetByID(ctx, id)

	if err != nil {
		return user.Profile{}, err
	}

	p := u.Profile()

	if s.cache != nil {
		s.cache.Set(ctx, id, p)
	}

	return p, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id string, req user.ChangePasswordRequest) error {
	u, err := s.store.GetByID(ctx, id)

	if err != nil {
		return err
	}

	if !s.hasher.Matches(req.OldPassword, u.PasswordHash) {
		return user.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(req.NewPassword)

	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()

	if _, err := s.store.Update(ctx, u); err != nil {
		return err
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *UserService) UpdateInfo(ctx context.Context, id string, req user.UpdateRequest) (user.Profile, error) {
	u, err := s.store.GetByID(ctx, id)

	if err != nil {
		return user.Profile{}, err
	}

	switch req.Type {
	case user.UpdateName:
		u.FirstName = req.FirstName
		u.LastName = req.LastName

	case user.UpdateEmail:
		// re-submitting the current email is a no-op, not a conflict
		if req.Email != u.Email {
			taken, err := s.store.ExistsByEmail(ctx, req.Email)

			if err != nil {
				return user.Profile{}, err
			}

			if taken {
				return user.Profile{}, user.ErrEmailTaken
			}

			u.Email = req.Email
		}

	default:
		return user.Profile{}, user.ErrInvalidUpdateType
	}

	u.UpdatedAt = time.Now().UTC()

	updated, err := s.store.Update(ctx, u)

	if err != nil {
		return user.Profile{}, err
	}

	s.invalidate(ctx, id)

	return updated.Profile(), nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Delete(ctx, id)
	}
}
