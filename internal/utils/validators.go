package utils

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yukikurage/planner-api/internal/constants"
	"github.com/yukikurage/planner-api/internal/models"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// RegisterValidators adds the custom binding tags used by request DTOs:
// weekday, hexcolor, civildate and clock.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"weekday": func(fl validator.FieldLevel) bool {
			return models.IsWeekday(fl.Field().String())
		},
		"hexcolor": func(fl validator.FieldLevel) bool {
			return hexColorPattern.MatchString(fl.Field().String())
		},
		"civildate": func(fl validator.FieldLevel) bool {
			_, err := time.Parse(constants.DateLayout, fl.Field().String())
			return err == nil
		},
		"clock": func(fl validator.FieldLevel) bool {
			_, err := time.Parse(constants.TimeLayout, fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
