package handler

import (
	"github.com/artconnect/artconnect-api/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the domain tags used in binding rules
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("usertype", validateUserType); err != nil {
		return err
	}
	return v.RegisterValidation("itemtype", validateItemType)
}

func validateUserType(fl validator.FieldLevel) bool {
	t := fl.Field().String()
	return t == model.UserTypeArtist || t == model.UserTypeCustomer
}

func validateItemType(fl validator.FieldLevel) bool {
	_, ok := model.NormalizeItemType(fl.Field().String())
	return ok
}
