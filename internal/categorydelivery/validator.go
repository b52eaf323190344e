package categorydelivery

import (
	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ValidCategoryType validates whether the category type is INCOME or EXPENSE.
var ValidCategoryType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return domain.IsCategoryType(t)
	}
	return false
}
