// Package validation is the pre-save check run before a row is written:
// struct rules through go-playground/validator plus lookups against stored rows.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"vivero/pkg/apperror"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Struct runs tag rules on s and returns a ValidationError for entity,
// empty when everything passed. Callers keep adding DB checks to it.
func (v *Validator) Struct(entity string, s any) (*apperror.ValidationError, error) {
	out := apperror.NewValidation(entity)
	err := v.v.Struct(s)
	if err == nil {
		return out, nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return nil, err
	}
	for _, fe := range fes {
		out.Add(fe.Field(), message(fe))
	}
	return out, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "email":
		return "enter a valid email address"
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}

// Unique reports whether no stored row of model has column = value, ignoring
// the row whose primary key is excludeID (0 for a row not yet stored).
func Unique(ctx context.Context, db *gorm.DB, model any, column string, value any, pkColumn string, excludeID uint) (bool, error) {
	q := db.WithContext(ctx).Model(model).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where(pkColumn+" <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("unique check %s: %w", column, err)
	}
	return n == 0, nil
}

// Exists reports whether a row of model with the given primary key is stored.
func Exists(ctx context.Context, db *gorm.DB, model any, pkColumn string, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var n int64
	if err := db.WithContext(ctx).Model(model).Where(pkColumn+" = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("exists check %s: %w", pkColumn, err)
	}
	return n > 0, nil
}
