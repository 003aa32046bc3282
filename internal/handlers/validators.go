package handlers

import (
	"regexp"
	"sync"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
	registerOnce        sync.Once
)

// registerValidators adds the custom binding tags used by the DTOs:
// currencycode (three letters) and langcode (a supported language).
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
			return currencyCodePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
			_, ok := domain.ParseLanguage(fl.Field().String())
			return ok
		})
	})
}
