package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

type NoteStyle string

const (
	NoteStyleEncouraging NoteStyle = "encouraging"
	NoteStyleWitty       NoteStyle = "witty"
	NoteStylePoetic      NoteStyle = "poetic"
)

func (s *NoteStyle) Scan(value interface{}) error {
	*s = NoteStyle(value.(string))
	return nil
}

func (s NoteStyle) Value() (string, error) {
	return string(s), nil
}

func ValidateNoteStyle(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	matched, _ := regexp.MatchString("^encouraging|witty|poetic$", value)
	return matched
}

func ValidateNoteStyleRaw(value string) bool {
	matched, _ := regexp.MatchString("^encouraging|witty|poetic$", value)
	return matched
}
