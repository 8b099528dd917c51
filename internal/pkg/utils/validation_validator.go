package utils

import (
	"meetocure-service/internal/pkg/constvars"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	phoneNumberRegex = regexp.MustCompile(`^[0-9]{10}$`)
	slotTimeRegex    = regexp.MustCompile(`^(1[0-2]|0?[1-9]):[0-5][0-9] (AM|PM)$`)
	bloodGroups      = map[string]bool{
		"A+": true, "A-": true, "B+": true, "B-": true,
		"AB+": true, "AB-": true, "O+": true, "O-": true,
	}
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	validate.RegisterValidation("calendar_date", validateCalendarDate)
	validate.RegisterValidation("slot_time", validateSlotTime)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("blood_group", validateBloodGroup)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.CalendarDateLayout, fl.Field().String())
	return err == nil
}

func validateSlotTime(fl validator.FieldLevel) bool {
	return slotTimeRegex.MatchString(fl.Field().String())
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phoneNumberRegex.MatchString(fl.Field().String())
}

func validateBloodGroup(fl validator.FieldLevel) bool {
	return bloodGroups[strings.ToUpper(fl.Field().String())]
}
