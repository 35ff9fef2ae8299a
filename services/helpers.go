package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// field is a named input checked by requireFields.
type field struct {
	name  string
	value string
}

// requireFields fails on the first blank value.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return invalid("%s is required", f.name)
		}
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// orNotFound turns a missing row into ErrNotFound with the given message.
func orNotFound(err error, msg string) error {
	if isNotFound(err) {
		return notFound("%s", msg)
	}
	return err
}

func normEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
