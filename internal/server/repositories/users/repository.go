package users

import (
	"context"

	"github.com/dmitrijs2005/usersvc/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// UsernameTaken reports whether a user other than excludeID owns username.
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	// Update replaces every mutable column. An empty PasswordHash keeps the
	// stored one.
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}
