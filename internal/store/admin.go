package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/onzacore/distri-api/internal/models"
)

// GetClients retrieves all clients
func (s *Store) GetClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := s.db.SelectContext(ctx, &clients, "SELECT * FROM clientes ORDER BY nombre_comercio")
	return clients, err
}

// GetClientByID retrieves a client by ID
func (s *Store) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	err := s.db.GetContext(ctx, &client, "SELECT * FROM clientes WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// CreateClient inserts a new client
func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clientes (nombre_comercio, direccion, telefono, nombre_vendedor)
		VALUES ($1, $2, $3, $4)
		RETURNING id, fecha_creacion`

	return s.db.GetContext(ctx, c, query, c.Name, c.Address, c.Phone, c.SellerName)
}

// UpdateClient updates a client
func (s *Store) UpdateClient(ctx context.Context, c *models.Client) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE clientes SET nombre_comercio = $1, direccion = $2, telefono = $3, nombre_vendedor = $4
		 WHERE id = $5`,
		c.Name, c.Address, c.Phone, c.SellerName, c.ID)
	return err
}

// GetCategories retrieves all categories
func (s *Store) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories, "SELECT * FROM categorias ORDER BY nombre")
	return categories, err
}

// CreateCategory inserts a new category
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	return s.db.GetContext(ctx, &c.ID,
		"INSERT INTO categorias (nombre) VALUES ($1) RETURNING id", c.Name)
}

// DeleteCategory removes a category. Products keep their label; category is a
// plain string on the product, not a foreign key.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM categorias WHERE id = $1", id)
	return err
}

// GetUserByEmail retrieves a user by email, nil if absent
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM usuarios WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves all users
func (s *Store) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users, "SELECT * FROM usuarios ORDER BY id")
	return users, err
}

// CreateUser inserts a new user
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO usuarios (nombre, email, password_hash, rol)
		VALUES ($1, $2, $3, $4)
		RETURNING id, fecha_creacion`

	return s.db.GetContext(ctx, u, query, u.Name, u.Email, u.PasswordHash, u.Role)
}

// DeleteUser removes a user account
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM usuarios WHERE id = $1", id)
	return err
}
