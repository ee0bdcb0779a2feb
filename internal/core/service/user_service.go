package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
	"github.com/goodplates/recipes-api/internal/pkg/paginate"
)

const defaultAdminUsername = "admin"

// UserService implements account management and the default-admin
// bootstrap.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.Invalid("username and password are required")
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, domain.Invalid("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         role,
		Recipes:      []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, input ports.ListInput) ([]*domain.User, error) {
	return s.users.List(ctx, paginate.FromQuery(input.Page, input.Results))
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	delta := ports.UserDelta{
		Username: input.Username,
		Name:     input.Name,
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		delta.PasswordHash = &hashed
	}
	return s.users.Update(ctx, id, delta)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// EnsureDefaultAdmin creates the "admin" account when it does not exist
// yet, so a fresh deployment always has one administrator.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context, password string) error {
	_, err := s.users.FindByUsername(ctx, defaultAdminUsername)
	if err == nil {
		return nil
	}
	if !domain.IsNotFound(err) {
		return err
	}

	_, err = s.Create(ctx, ports.CreateUserInput{
		Username: defaultAdminUsername,
		Name:     "Default Admin",
		Password: password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("username", defaultAdminUsername).Msg("default admin created")
	return nil
}
