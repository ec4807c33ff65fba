package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/server/auth"
	validation "github.com/go-ozzo/ozzo-validation"
)

// RegisterInput is the payload of account creation.
type RegisterInput struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Fullname  string `json:"fullname"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Status    string `json:"status"`
}

func (in RegisterInput) Validate() error {
	return toValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Firstname, validation.Required, notBlank),
		validation.Field(&in.Username, validation.Required, notBlank),
		validation.Field(&in.Password, validation.Required, passwordLength),
	))
}

// UpdateInput replaces every mutable field of a user. Password is optional;
// a blank one keeps the stored hash.
type UpdateInput struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Fullname  string `json:"fullname"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Status    string `json:"status"`
}

func (in UpdateInput) Validate() error {
	return toValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Firstname, validation.Required, notBlank),
		validation.Field(&in.Username, validation.Required, notBlank),
		validation.Field(&in.Password, passwordLength),
	))
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return toValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required),
		validation.Field(&in.Password, validation.Required),
	))
}

var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

var passwordLength = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if len(s) > auth.MaxPasswordBytes {
		return fmt.Errorf("must be at most %d bytes", auth.MaxPasswordBytes)
	}
	return nil
})

// toValidationError turns ozzo field errors into a common.ValidationError.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for name, fieldErr := range errs {
		fields[name] = fieldErr.Error()
	}
	return &common.ValidationError{Fields: fields}
}

func defaultFullname(in RegisterInput) string {
	if in.Fullname != "" {
		return in.Fullname
	}
	return strings.TrimSpace(in.Firstname + " " + in.Lastname)
}

func defaultStatus(status string) string {
	if status == "" {
		return common.DefaultStatus
	}
	return status
}
