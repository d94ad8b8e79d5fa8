package services

import (
	"context"
	"strings"

	"github.com/anonto42/recipebox/backend/internal/errs"
	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MaxNicknameAttempts bounds how often a first login retries after losing a
// nickname race.
const MaxNicknameAttempts = 5

// IdentityService turns a verified identity into exactly one User.
type IdentityService struct {
	db                *gorm.DB
	users             repositories.UserRepository
	log               *logrus.Logger
	nicknameAllocator func(ctx context.Context, requested string) (string, error)
}

// NewIdentityService creates an IdentityService. db runs the create-user
// transaction; users serves lookups and nickname allocation.
func NewIdentityService(db *gorm.DB, users repositories.UserRepository, log *logrus.Logger) *IdentityService {
	return &IdentityService{
		db:                db,
		users:             users,
		log:               log,
		nicknameAllocator: users.AllocateUniqueNickname,
	}
}

// LoginOrCreate returns the user registered under email, creating it on the
// first login. New users get a unique nickname derived from suggestion (or
// the local part of the email) and follow themselves.
func (s *IdentityService) LoginOrCreate(ctx context.Context, email, suggestion string) (*models.User, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, false, errs.Errorf(errs.EINVALID, "Invalid login. Please try again.")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errs.Is(err, errs.ENOTFOUND) {
		return nil, false, err
	}

	requested := baseNickname(email, suggestion)
	for attempt := 1; attempt <= MaxNicknameAttempts; attempt++ {
		nickname, err := s.nicknameAllocator(ctx, requested)
		if err != nil {
			return nil, false, err
		}

		user = &models.User{Nickname: nickname, Email: email}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := repositories.NewPostgresUserRepository(tx).CreateUser(ctx, user); err != nil {
				return err
			}
			_, err := repositories.NewPostgresFollowRepository(tx).Follow(ctx, user.ID, user.ID)
			return err
		})
		if err == nil {
			s.log.WithFields(logrus.Fields{"user_id": user.ID, "nickname": nickname}).Info("user created")
			return user, true, nil
		}
		if !errs.Is(err, errs.ECONFLICT) {
			return nil, false, err
		}

		// A concurrent first login for the same email wins the race.
		if existing, lookupErr := s.users.GetUserByEmail(ctx, email); lookupErr == nil {
			return existing, false, nil
		}
		s.log.WithFields(logrus.Fields{"nickname": nickname, "attempt": attempt}).Warn("nickname taken, retrying")
	}
	return nil, false, errs.Errorf(errs.ECONFLICT, "Could not allocate a nickname for %s.", requested)
}

// baseNickname picks the requested nickname before uniqueness is resolved.
func baseNickname(email, suggestion string) string {
	nickname := strings.TrimSpace(suggestion)
	if nickname == "" {
		nickname, _, _ = strings.Cut(email, "@")
		nickname = strings.TrimSpace(nickname)
	}
	if nickname == "" {
		nickname = fallbackNickname
	}
	if runes := []rune(nickname); len(runes) > maxNicknameBase {
		nickname = string(runes[:maxNicknameBase])
	}
	return nickname
}

// maxNicknameBase leaves room for a numeric suffix within the 64 character
// column.
const maxNicknameBase = 60

// fallbackNickname is used when neither the suggestion nor the email yields one.
const fallbackNickname = "user"
