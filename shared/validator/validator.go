package validator

import (
	"encoding/json"
	"fmt"
	"io"
	slotModel "meetroom/internal/domains/slot/model"
	"meetroom/shared/constant"
	"meetroom/shared/failure"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

const (
	TagDate      = "date"
	TagClock     = "clock"
	TagSlotRange = "slotrange"
)

var validate *val.Validate

func validateDate(fl val.FieldLevel) bool {
	_, err := time.Parse(constant.DateOnlyFormat, fl.Field().String())

	return err == nil
}

func validateClock(fl val.FieldLevel) bool {
	_, err := slotModel.ParseClock(fl.Field().String())

	return err == nil
}

// validateSlotRange accepts "HH:MM-HH:MM" with start strictly before end.
func validateSlotRange(fl val.FieldLevel) bool {
	_, err := slotModel.ParseRange(fl.Field().String())

	return err == nil
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	custom := map[string]val.Func{
		TagDate:      validateDate,
		TagClock:     validateClock,
		TagSlotRange: validateSlotRange,
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		field, msg := message(err)

		return failure.Validation(field, msg) //nolint:wrapcheck
	}

	return nil
}
