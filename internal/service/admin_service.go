package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/onzacore/distri-api/internal/auth"
	"github.com/onzacore/distri-api/internal/models"
	"github.com/onzacore/distri-api/internal/store"
	"github.com/onzacore/distri-api/internal/util"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AdminService covers accounts, clients, categories and the activity log.
type AdminService struct {
	store  *store.Store
	tokens *auth.Manager
	logger *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(store *store.Store, tokens *auth.Manager) *AdminService {
	return &AdminService{
		store:  store,
		tokens: tokens,
		logger: util.GetLogger(),
	}
}

// Login verifies credentials and issues a bearer token.
func (s *AdminService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		util.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(auth.Session{
		UserID:   user.ID,
		UserName: user.Name,
		Role:     user.Role,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	util.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info("User logged in", zap.String("email", email), zap.String("rol", user.Role))
	return token, user, nil
}

// CreateUser registers a new panel account with a hashed password.
func (s *AdminService) CreateUser(ctx context.Context, name, email, password, role string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUsers lists panel accounts.
func (s *AdminService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.store.GetUsers(ctx)
}

// DeleteUser removes a panel account.
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	return s.store.DeleteUser(ctx, id)
}

// GetClients lists clients.
func (s *AdminService) GetClients(ctx context.Context) ([]models.Client, error) {
	return s.store.GetClients(ctx)
}

// SaveClient creates or updates a client.
func (s *AdminService) SaveClient(ctx context.Context, c *models.Client) error {
	if c.ID == 0 {
		return s.store.CreateClient(ctx, c)
	}
	return s.store.UpdateClient(ctx, c)
}

// GetCategories lists categories.
func (s *AdminService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.GetCategories(ctx)
}

// CreateCategory adds a category.
func (s *AdminService) CreateCategory(ctx context.Context, c *models.Category) error {
	return s.store.CreateCategory(ctx, c)
}

// DeleteCategory removes a category.
func (s *AdminService) DeleteCategory(ctx context.Context, id int64) error {
	return s.store.DeleteCategory(ctx, id)
}

// GetActivity lists the most recent audit entries.
func (s *AdminService) GetActivity(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	return s.store.GetActivity(ctx, limit)
}
