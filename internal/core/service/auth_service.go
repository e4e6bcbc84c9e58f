package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/banco/cliente-api/internal/core/domain"
	"github.com/banco/cliente-api/internal/core/ports"
)

// AuthService implements registration and login against the credential store.
type AuthService struct {
	users   ports.UserRepository
	roles   ports.RoleRepository
	tokens  ports.TokenService
	limiter ports.LoginLimiter
	logger  zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenService, limiter ports.LoginLimiter, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens, limiter: limiter, logger: logger}
}

// Register creates a new account with a bcrypt-hashed password. Requested role
// aliases are mapped onto the closed enumeration and resolved against the
// seeded role rows; no aliases means the default USER role.
func (s *AuthService) Register(ctx context.Context, username, password string, roleNames []string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	resolved, err := s.resolveRoles(ctx, roleNames)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        resolved,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Strs("roles", created.Roles).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a bearer token. An unknown username
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooManyFailures(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login limiter unavailable")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	s.logger.Info().Str("username", user.Username).Msg("user authenticated")
	return token, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("login limiter record failed")
	}
}

// resolveRoles maps wire aliases onto role names and verifies each one exists
// as a seeded reference row.
func (s *AuthService) resolveRoles(ctx context.Context, roleNames []string) ([]string, error) {
	if len(roleNames) == 0 {
		roleNames = []string{"user"}
	}

	seen := make(map[string]struct{}, len(roleNames))
	resolved := make([]string, 0, len(roleNames))
	for _, alias := range roleNames {
		var name string
		switch strings.ToLower(alias) {
		case "admin":
			name = domain.RoleAdmin
		case "mod", "moderator":
			name = domain.RoleModerator
		default:
			name = domain.RoleUser
		}
		if _, dup := seen[name]; dup {
			continue
		}
		role, err := s.roles.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		seen[name] = struct{}{}
		resolved = append(resolved, role.Name)
	}
	return resolved, nil
}
