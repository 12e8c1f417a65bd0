package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billwise/internal/auth"
	"github.com/mmynk/billwise/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

var _ api.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Login checks the owner's passphrase and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "name", req.Msg.Name)

	if req.Msg.Name == "" || req.Msg.Passphrase == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	subject, err := s.authenticator.Authenticate(ctx, req.Msg.Name, req.Msg.Passphrase)
	if err != nil {
		s.logger.Warn("Login failed", "name", req.Msg.Name, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
		}
		return nil, connect.NewError(connect.CodeInternal, errors.New("login failed"))
	}

	token, expiresAt, err := s.jwtManager.Generate(subject)
	if err != nil {
		s.logger.Error("Failed to generate token", "subject", subject, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("login failed"))
	}

	s.logger.Info("Logged in successfully", "subject", subject)
	return connect.NewResponse(&api.LoginResponse{Token: token, ExpiresAt: expiresAt}), nil
}
