// Package services contains server-side business logic. UserService handles
// registration, login and the CRUD operations on user accounts.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/server/auth"
	"github.com/dmitrijs2005/usersvc/internal/server/config"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/repomanager"
)

// LoginResult is a signed bearer token and the user it was issued for.
type LoginResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a user. The username check and the insert share one
// transaction; the UNIQUE constraint catches whatever still races past it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user := &models.User{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Fullname:  defaultFullname(in),
		Username:  in.Username,
		Status:    defaultStatus(in.Status),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		taken, err := repo.UsernameTaken(ctx, in.Username, 0)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrConflict
		}

		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash

		user, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	return user, nil
}

// Login checks credentials and issues a token. Unknown usernames and wrong
// passwords both return common.ErrUnauthorized and cost one bcrypt compare.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_, _ = auth.CheckPassword(in.Password, s.getDummyHash())
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, err := auth.CheckPassword(in.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("login: check password: %w", err)
	}
	if !ok {
		return nil, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(auth.Identity{
		ID:       user.ID,
		Username: user.Username,
		Fullname: user.Fullname,
	}, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// Update replaces the user's fields. The password changes only when a
// non-blank one is supplied.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	user := &models.User{
		ID:        id,
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Fullname:  in.Fullname,
		Username:  in.Username,
		Status:    defaultStatus(in.Status),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		taken, err := repo.UsernameTaken(ctx, in.Username, id)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrConflict
		}

		if strings.TrimSpace(in.Password) != "" {
			hash, err := auth.HashPassword(in.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user.PasswordHash = hash
		}

		return repo.Update(ctx, user)
	})
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}

	return nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

// getDummyHash returns a hash that unknown usernames are compared against.
func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := auth.HashPassword("dummy password for unknown users")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
