package repositories

import (
	"testing"

	"github.com/anonto42/recipebox/backend/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, translate(nil, "op", "missing", "taken"))
	})

	t.Run("Record not found", func(t *testing.T) {
		err := translate(gorm.ErrRecordNotFound, "op", "missing", "taken")
		assert.True(t, errs.Is(err, errs.ENOTFOUND))
		assert.Equal(t, "missing", errs.ErrorMessage(err))
	})

	t.Run("Duplicated key", func(t *testing.T) {
		err := translate(errors.Wrap(gorm.ErrDuplicatedKey, "insert"), "op", "missing", "taken")
		assert.True(t, errs.Is(err, errs.ECONFLICT))
		assert.Equal(t, "taken", errs.ErrorMessage(err))
	})

	t.Run("Untranslated driver error stays internal", func(t *testing.T) {
		err := translate(errors.New("UNIQUE constraint failed: user.nickname"), "create user", "missing", "taken")
		assert.True(t, errs.Is(err, errs.EINTERNAL))
		assert.Contains(t, err.Error(), "create user")
	})

	t.Run("Application errors pass through", func(t *testing.T) {
		in := errs.Errorf(errs.EINVALID, "Bad.")
		assert.Same(t, in, translate(in, "op", "missing", "taken"))
	})
}
