package repositories

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anonto42/recipebox/backend/internal/errs"
	"github.com/anonto42/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByNickname(ctx context.Context, nickname string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	AllocateUniqueNickname(ctx context.Context, requested string) (string, error)
	UpdateProfile(ctx context.Context, userID uint, nickname, aboutMe string) (*models.User, error)
	TouchLastSeen(ctx context.Context, userID uint, at time.Time) error
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository on top of gorm
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var _ UserRepository = (*PostgresUserRepository)(nil)

// CreateUser inserts a new user. A taken nickname or email yields ECONFLICT.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return translate(err, "create user", "", "This nickname or email address is already in use.")
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, translate(err, "get user by id", "User not found.", "")
	}
	return &user, nil
}

// GetUserByNickname retrieves a user by nickname
func (r *PostgresUserRepository) GetUserByNickname(ctx context.Context, nickname string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("nickname = ?", nickname).First(&user).Error
	if err != nil {
		return nil, translate(err, "get user by nickname", "User "+nickname+" not found.", "")
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err, "get user by email", "User not found.", "")
	}
	return &user, nil
}

// AllocateUniqueNickname returns requested when no user has it, otherwise the
// first free candidate of requested+"2", requested+"3", ...
// The result is only a candidate: the unique index on nickname is what
// guarantees uniqueness, so callers must still handle ECONFLICT on insert.
func (r *PostgresUserRepository) AllocateUniqueNickname(ctx context.Context, requested string) (string, error) {
	candidate := requested
	for version := 2; ; version++ {
		taken, err := r.nicknameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = requested + strconv.Itoa(version)
	}
}

func (r *PostgresUserRepository) nicknameTaken(ctx context.Context, nickname string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("nickname = ?", nickname).Count(&count).Error
	if err != nil {
		return false, translate(err, "count nickname", "", "")
	}
	return count > 0, nil
}

// UpdateProfile changes the nickname and bio of a user.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, userID uint, nickname, aboutMe string) (*models.User, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, errs.Errorf(errs.EINVALID, "A nickname is required.")
	}
	if utf8.RuneCountInString(aboutMe) > models.MaxAboutMeLength {
		return nil, errs.Errorf(errs.EINVALID, "About me must not have more than %d characters.", models.MaxAboutMeLength)
	}

	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return translate(err, "load user", "User not found.", "")
		}
		if nickname != user.Nickname {
			var count int64
			if err := tx.Model(&models.User{}).Where("nickname = ?", nickname).Count(&count).Error; err != nil {
				return translate(err, "count nickname", "", "")
			}
			if count > 0 {
				return errs.Errorf(errs.ECONFLICT, "This nickname is already in use. Please choose another one.")
			}
		}
		user.Nickname = nickname
		user.AboutMe = aboutMe
		err := tx.Model(&user).Select("nickname", "about_me").Updates(&user).Error
		return translate(err, "update profile", "", "This nickname is already in use. Please choose another one.")
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TouchLastSeen sets the last activity timestamp of a user.
func (r *PostgresUserRepository) TouchLastSeen(ctx context.Context, userID uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("last_seen", at)
	if res.Error != nil {
		return translate(res.Error, "touch last seen", "", "")
	}
	if res.RowsAffected == 0 {
		return errs.Errorf(errs.ENOTFOUND, "User not found.")
	}
	return nil
}

// likeEscaper escapes LIKE wildcards so a search matches them literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchUsers searches for users by nickname (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where(`LOWER(nickname) LIKE LOWER(?) ESCAPE '\'`, "%"+likeEscaper.Replace(query)+"%").
		Order("nickname").
		Find(&users).Error
	if err != nil {
		return nil, translate(err, "search users", "", "")
	}
	return users, nil
}
