package validator

import (
	"net/mail"
	"strings"
	"time"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// DOBLayout is the wire format for dates of birth.
const DOBLayout = "2006-01-02"

func ValidateSignup(name, dob, email, country, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(name) == "" {
		errs.Add("name", "Name is required")
	}

	dob = strings.TrimSpace(dob)
	if dob == "" {
		errs.Add("dob", "Date of birth is required")
	} else if _, err := time.Parse(DOBLayout, dob); err != nil {
		errs.Add("dob", "Date of birth must be in YYYY-MM-DD format")
	}

	validateEmail(email, errs)

	if strings.TrimSpace(country) == "" {
		errs.Add("country", "Country is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateSignin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}
