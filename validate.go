package sdk

import (
	"net/mail"
	"net/url"
	"strings"
)

// isValidEmail checks if the given string is a valid email address.
func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Reason: field + " is required"}
	}
	return nil
}

func requireEmail(field, value string) error {
	if err := requireText(field, value); err != nil {
		return err
	}
	if !isValidEmail(value) {
		return ValidationError{Field: field, Reason: "invalid email format"}
	}
	return nil
}

// entityPath joins a collection route and an id, escaping the id.
func entityPath(base, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ValidationError{Field: "id", Reason: "id is required"}
	}
	return base + "/" + url.PathEscape(id), nil
}
