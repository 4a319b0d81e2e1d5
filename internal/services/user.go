package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/apierr"
	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/repos"
	"github.com/skillcoach/backend/internal/types"
)

type CreateUserInput struct {
	Username      string
	Email         string
	LearningStyle *string
}

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*types.User, error)
	UpdateLearningStyle(ctx context.Context, userID uint, learningStyle string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

// CreateUser persists a new user unless the username or email is already
// taken (case-sensitive exact match on either field).
func (us *userService) CreateUser(ctx context.Context, input CreateUserInput) (*types.User, error) {
	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := us.userRepo.UsernameOrEmailExists(ctx, tx, input.Username, input.Email)
		if err != nil {
			return apierr.Storage(err)
		}
		if exists {
			return apierr.Conflict("Username or email already exists")
		}

		user := &types.User{
			Username:      input.Username,
			Email:         input.Email,
			LearningStyle: input.LearningStyle,
		}
		if err := us.userRepo.Create(ctx, tx, user); err != nil {
			return apierr.Storage(err)
		}
		out = user
		return nil
	}); err != nil {
		us.log.Warn("CreateUser failed", "username", input.Username, "error", err)
		return nil, apierr.Coerce(err)
	}
	return out, nil
}

// UpdateLearningStyle overwrites the user's learning style in full.
func (us *userService) UpdateLearningStyle(ctx context.Context, userID uint, learningStyle string) (*types.User, error) {
	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return apierr.Storage(err)
		}
		if user == nil {
			return apierr.NotFound("User not found")
		}

		if err := us.userRepo.UpdateLearningStyle(ctx, tx, userID, learningStyle); err != nil {
			return apierr.Storage(err)
		}

		reloaded, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return apierr.Storage(err)
		}
		out = reloaded
		return nil
	}); err != nil {
		us.log.Warn("UpdateLearningStyle failed", "user_id", userID, "error", err)
		return nil, apierr.Coerce(err)
	}
	return out, nil
}
