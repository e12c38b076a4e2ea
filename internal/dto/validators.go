package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/veloxrp/econ_backend/internal/core/domain"
)

// accountRole validates that a string is one of the known account roles.
var accountRole validator.Func = func(fl validator.FieldLevel) bool {
	switch domain.AccountRole(fl.Field().String()) {
	case domain.RoleViewer, domain.RoleContributor, domain.RoleManager, domain.RoleOwner:
		return true
	}
	return false
}

// RegisterValidators installs custom binding validators. Call once at startup.
func RegisterValidators() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("accountrole", accountRole)
	}
	return nil
}
