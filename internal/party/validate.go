package party

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// the login form. field order is the order errors are reported in.
type Form struct {
	Username string `validate:"required"`
	PartyID  string `validate:"required"`
}

var formFields = map[string]Field{
	"Username": FieldUsername,
	"PartyID":  FieldPartyID,
}

// trims both fields and checks them. only the first failing field is reported.
func Validate(username, partyID string) (Form, *FieldError) {
	form := Form{
		Username: strings.TrimSpace(username),
		PartyID:  strings.TrimSpace(partyID),
	}

	err := validate.Struct(form)
	if err == nil {
		return form, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if field, ok := formFields[verrs[0].StructField()]; ok {
			return form, &FieldError{Field: field, Reason: ReasonRequired}
		}
	}

	// only reachable if a new form field is added without a mapping
	return form, &FieldError{Field: FieldUsername, Reason: ReasonRequired}
}
