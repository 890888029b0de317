package models

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"plasco-inventory/internal/apperr"
)

var validate = validator.New()

// checkStruct runs validator tags against v and translates every
// failing field into its localized message. All failures are collected
// into one ValidationError, mirroring how the API joins them.
func checkStruct(v interface{}, messages map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if m, ok := messages[fe.StructField()+"."+fe.Tag()]; ok {
			msgs = append(msgs, m)
		} else {
			msgs = append(msgs, fe.Error())
		}
	}
	return apperr.NewValidation(msgs...)
}
