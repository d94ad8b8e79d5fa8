package repositories

import (
	"context"
	"iter"

	"github.com/anonto42/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

// PantryRepository defines the interface for pantry data operations
type PantryRepository interface {
	AddItem(ctx context.Context, ownerID uint, name, amount string) (*models.PantryItem, error)
	RemoveItem(ctx context.Context, ownerID, itemID uint) (bool, error)
	FindItemByName(ctx context.Context, ownerID uint, name string) (*models.PantryItem, error)
	Items(ctx context.Context, ownerID uint) iter.Seq2[models.PantryItem, error]
	ListItems(ctx context.Context, ownerID uint) ([]models.PantryItem, error)
}

// PostgresPantryRepository implements PantryRepository on top of gorm
type PostgresPantryRepository struct {
	db *gorm.DB
}

// NewPostgresPantryRepository creates a new PostgresPantryRepository
func NewPostgresPantryRepository(db *gorm.DB) *PostgresPantryRepository {
	return &PostgresPantryRepository{db: db}
}

var _ PantryRepository = (*PostgresPantryRepository)(nil)

// AddItem creates a pantry item owned by ownerID. Several items may share a
// name.
func (r *PostgresPantryRepository) AddItem(ctx context.Context, ownerID uint, name, amount string) (*models.PantryItem, error) {
	item := &models.PantryItem{Name: name, Amount: amount, UserID: ownerID}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, translate(err, "create pantry item", "", "")
	}
	return item, nil
}

// RemoveItem deletes the item only if ownerID owns it.
func (r *PostgresPantryRepository) RemoveItem(ctx context.Context, ownerID, itemID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, ownerID).
		Delete(&models.PantryItem{})
	if res.Error != nil {
		return false, translate(res.Error, "delete pantry item", "", "")
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresPantryRepository) FindItemByName(ctx context.Context, ownerID uint, name string) (*models.PantryItem, error) {
	var item models.PantryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", ownerID, name).
		Order("id").
		First(&item).Error
	if err != nil {
		return nil, translate(err, "find pantry item", "Item "+name+" not found.", "")
	}
	return &item, nil
}

// Items yields the pantry of ownerID in insertion order. The sequence can be
// ranged over more than once.
func (r *PostgresPantryRepository) Items(ctx context.Context, ownerID uint) iter.Seq2[models.PantryItem, error] {
	return func(yield func(models.PantryItem, error) bool) {
		rows, err := r.db.WithContext(ctx).Model(&models.PantryItem{}).
			Where("user_id = ?", ownerID).
			Order("id").
			Rows()
		if err != nil {
			yield(models.PantryItem{}, translate(err, "query pantry", "", ""))
			return
		}
		defer rows.Close()
		for rows.Next() {
			var item models.PantryItem
			if err := r.db.ScanRows(rows, &item); err != nil {
				yield(models.PantryItem{}, translate(err, "scan pantry item", "", ""))
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.PantryItem{}, translate(err, "iterate pantry", "", ""))
		}
	}
}

func (r *PostgresPantryRepository) ListItems(ctx context.Context, ownerID uint) ([]models.PantryItem, error) {
	items := []models.PantryItem{}
	for item, err := range r.Items(ctx, ownerID) {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
