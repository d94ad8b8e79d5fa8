package repositories

import (
	"context"
	"iter"

	"github.com/anonto42/recipebox/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID uint) (bool, error)
	Unfollow(ctx context.Context, followerID, followedID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	FollowedRecipes(ctx context.Context, userID uint) iter.Seq2[models.Recipe, error]
	ListFollowedRecipes(ctx context.Context, userID uint, offset, limit int) ([]models.Recipe, error)
	CountFollowedRecipes(ctx context.Context, userID uint) (int64, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowed(ctx context.Context, userID uint) ([]models.User, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowed(ctx context.Context, userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository on top of gorm
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

var _ FollowRepository = (*PostgresFollowRepository)(nil)

// Follow adds the edge follower -> followed. It reports false when the edge
// already existed.
func (r *PostgresFollowRepository) Follow(ctx context.Context, followerID, followedID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{FollowerID: followerID, FollowedID: followedID})
	if res.Error != nil {
		return false, translate(res.Error, "create follow", "", "")
	}
	return res.RowsAffected == 1, nil
}

// Unfollow removes the edge follower -> followed. It reports false when
// there was no such edge.
func (r *PostgresFollowRepository) Unfollow(ctx context.Context, followerID, followedID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, translate(res.Error, "delete follow", "", "")
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "count follow", "", "")
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) followedRecipes(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Recipe{}).
		Select("recipe.*").
		Joins("JOIN followers ON followers.followed_id = recipe.user_id").
		Where("followers.follower_id = ?", userID).
		Order("recipe.timestamp DESC").
		Order("recipe.id DESC")
}

// FollowedRecipes yields the recipes of every user that userID follows,
// newest first. Each range over the sequence runs a fresh query. Ingredients
// and authors are not loaded.
func (r *PostgresFollowRepository) FollowedRecipes(ctx context.Context, userID uint) iter.Seq2[models.Recipe, error] {
	return func(yield func(models.Recipe, error) bool) {
		rows, err := r.followedRecipes(ctx, userID).Rows()
		if err != nil {
			yield(models.Recipe{}, translate(err, "query followed recipes", "", ""))
			return
		}
		defer rows.Close()
		for rows.Next() {
			var recipe models.Recipe
			if err := r.db.ScanRows(rows, &recipe); err != nil {
				yield(models.Recipe{}, translate(err, "scan followed recipe", "", ""))
				return
			}
			if !yield(recipe, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.Recipe{}, translate(err, "iterate followed recipes", "", ""))
		}
	}
}

// ListFollowedRecipes returns one page of the followed recipes with their
// authors and ingredients.
func (r *PostgresFollowRepository) ListFollowedRecipes(ctx context.Context, userID uint, offset, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.followedRecipes(ctx, userID).
		Preload("Author").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredient.id")
		}).
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, translate(err, "list followed recipes", "", "")
	}
	return recipes, nil
}

func (r *PostgresFollowRepository) CountFollowedRecipes(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Joins("JOIN followers ON followers.followed_id = recipe.user_id").
		Where("followers.follower_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err, "count followed recipes", "", "")
	}
	return count, nil
}

// GetFollowers returns the users following userID.
func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("follower_id").Where("followed_id = ?", userID),
	).Order("nickname").Find(&users).Error
	if err != nil {
		return nil, translate(err, "get followers", "", "")
	}
	return users, nil
}

// GetFollowed returns the users userID follows.
func (r *PostgresFollowRepository) GetFollowed(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID),
	).Order("nickname").Find(&users).Error
	if err != nil {
		return nil, translate(err, "get followed", "", "")
	}
	return users, nil
}

func (r *PostgresFollowRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, translate(err, "count followers", "", "")
	}
	return count, nil
}

func (r *PostgresFollowRepository) CountFollowed(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, translate(err, "count followed", "", "")
	}
	return count, nil
}
