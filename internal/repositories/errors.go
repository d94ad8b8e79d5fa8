package repositories

import (
	"github.com/anonto42/recipebox/backend/internal/errs"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// translate maps gorm errors onto application errors. Record-not-found
// becomes ENOTFOUND with notFound as message, unique violations become
// ECONFLICT with conflict as message, anything else is wrapped with op.
// Unique violations are only recognized when the connection was opened with
// gorm.Config.TranslateError.
func translate(err error, op, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errs.ErrorCode(err) != errs.EINTERNAL:
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.Errorf(errs.ENOTFOUND, "%s", notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Errorf(errs.ECONFLICT, "%s", conflict)
	default:
		return errors.Wrap(err, op)
	}
}
