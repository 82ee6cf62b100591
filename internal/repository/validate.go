package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// createRequest records which fields a create body carried. Values are kept
// as sent, whatever their JSON type; a field sent as null is still present.
type createRequest struct {
	Title json.RawMessage `json:"title" validate:"required"`
	URL   json.RawMessage `json:"url" validate:"required"`
	Techs json.RawMessage `json:"techs" validate:"required"`
}

func (r createRequest) fields() Fields {
	return Fields{Title: r.Title, URL: r.URL, Techs: r.Techs}
}

// updateRequest is applied wholesale: omitted fields are cleared.
type updateRequest struct {
	Title json.RawMessage `json:"title"`
	URL   json.RawMessage `json:"url"`
	Techs json.RawMessage `json:"techs"`
}

func (r updateRequest) fields() Fields {
	return Fields{Title: r.Title, URL: r.URL, Techs: r.Techs}
}

// FieldError is a payload rejected because of one field.
// Message is ready to be sent to the client.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// PayloadValidator checks request bodies and renders English messages
// such as "Title is required.".
type PayloadValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewPayloadValidator builds a validator with the English translations loaded.
func NewPayloadValidator() (*PayloadValidator, error) {
	english := en.New()
	uni := ut.New(english, english)

	trans, found := uni.GetTranslator("en")
	if !found {
		trans = uni.GetFallback()
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("register default translations: %w", err)
	}

	err := v.RegisterTranslation("required", trans,
		func(t ut.Translator) error {
			return t.Add("required", "{0} is required.", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T("required", fieldLabel(fe.Field()))
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
	if err != nil {
		return nil, fmt.Errorf("register required translation: %w", err)
	}

	return &PayloadValidator{validate: v, translator: trans}, nil
}

// Validate checks v and returns a *FieldError for the first failing field in
// declaration order, or nil.
func (p *PayloadValidator) Validate(v any) error {
	err := p.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	first := verrs[0]
	return &FieldError{
		Field:   first.Field(),
		Message: first.Translate(p.translator),
	}
}

// fieldLabel upper-cases the first letter of a JSON field name: "url" -> "Url".
func fieldLabel(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
