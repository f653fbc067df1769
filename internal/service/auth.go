package service

import (
	"context"

	"github.com/codingstreams/userhub/internal/domain/user"
)

// TokenPair is the payload returned by both SignUp and Login. The shapes
// are deliberately identical so callers cannot tell a fresh account from an
// existing one by looking at the response.
type TokenPair struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type AuthService struct {
	store  UserStore
	tokens TokenIssuer
	hasher PasswordHasher
}

func NewAuthService(store UserStore, tokens TokenIssuer, hasher PasswordHasher) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		hasher: hasher,
	}
}

func (s *AuthService) SignUp(ctx context.Context, req user.SignUpRequest) (TokenPair, error) {
	taken, err := s.store.ExistsByEmail(ctx, req.Email)

	if err != nil {
		return TokenPair{}, err
	}

	if taken {
		return TokenPair{}, user.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)

	if err != nil {
		return TokenPair{}, err
	}

	// the store may still report ErrEmailTaken here if a concurrent signup
	// won the unique-index race
	if _, err := s.store.Create(ctx, user.NewFromSignUpRequest(req, hash)); err != nil {
		return TokenPair{}, err
	}

	return s.issue(req.Email)
}

func (s *AuthService) Login(ctx context.Context, req user.LoginRequest) (TokenPair, error) {
	u, err := s.store.GetByEmail(ctx, req.Email)

	if err != nil {
		return TokenPair{}, err
	}

	if !s.hasher.Matches(req.Password, u.PasswordHash) {
		return TokenPair{}, user.ErrInvalidCredentials
	}

	// no account mutation on login
	return s.issue(u.Email)
}

// VerifyToken never errors; a defective token simply reads as false.
func (s *AuthService) VerifyToken(token string) bool {
	return s.tokens.Validate(token)
}

// EmailFromToken returns the subject email the token was issued for.
func (s *AuthService) EmailFromToken(token string) (string, error) {
	return s.tokens.ExtractEmail(token)
}

func (s *AuthService) issue(email string) (TokenPair, error) {
	token, expiresIn, err := s.tokens.Issue(email)

	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: token, ExpiresIn: expiresIn}, nil
}
