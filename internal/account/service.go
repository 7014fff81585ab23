package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"uepex/internal/logging"
	"uepex/internal/metrics"
)

// Store is the persistence gateway for users.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Insert(ctx context.Context, u User) error
}

// Service authenticates users.
type Service struct {
	store   Store
	metrics *metrics.Metrics
}

// NewService creates a service. m may be nil.
func NewService(store Store, m *metrics.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

// Authenticate checks username and password. The username is matched ignoring
// case and surrounding spaces. A user stored without a role gets RoleUser.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	normalized := strings.ToLower(strings.TrimSpace(username))
	logger := logging.FromContext(ctx).With("usuario", normalized)

	u, err := s.store.FindByUsername(ctx, normalized)
	if err != nil {
		s.metrics.RecordLogin("error")
		return nil, err
	}
	if u == nil {
		logger.Warn("login for unknown user")
		s.metrics.RecordLogin("rejected")
		return nil, ErrInvalidCredentials
	}
	if err := VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login with wrong password")
			s.metrics.RecordLogin("rejected")
		} else {
			s.metrics.RecordLogin("error")
		}
		return nil, err
	}

	if strings.TrimSpace(u.Role) == "" {
		u.Role = RoleUser
	}
	logger.Info("user authenticated", "rol", u.Role)
	s.metrics.RecordLogin("ok")
	return u, nil
}

// EnsureUser creates the user unless one with the same name already exists.
// It reports whether a user was created.
func (s *Service) EnsureUser(ctx context.Context, username, password, role string) (bool, error) {
	existing, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	if role == "" {
		role = RoleUser
	}
	err = s.store.Insert(ctx, User{ID: uuid.NewString(), Username: username, PasswordHash: hash, Role: role})
	if errors.Is(err, ErrUserExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	logging.FromContext(ctx).Info("user created", "usuario", username, "rol", role)
	return true, nil
}
