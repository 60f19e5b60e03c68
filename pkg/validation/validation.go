// Package validation valida structs de entrada usando as tags `validate`,
// com mensagens em português e nomes de campo iguais aos do JSON.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptbrtranslations "github.com/go-playground/validator/v10/translations/pt_BR"
)

// FieldError indica o problema de um campo específico
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error agrupa os campos inválidos de uma requisição
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "dados inválidos: " + strings.Join(parts, "; ")
}

// NewFieldError cria um Error para um único campo
func NewFieldError(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}}
}

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() *Validator {
	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	translator, _ := uni.GetTranslator(locale.Locale())

	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = ptbrtranslations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: validate, translator: translator}
}

// Struct retorna *Error quando alguma regra falha
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.translator),
		})
	}

	return &Error{Fields: fields}
}

// Var valida um valor isolado, como um e-mail vindo de flag de linha de comando
func (v *Validator) Var(field string, value any, tag string) error {
	if err := v.validate.Var(value, tag); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return NewFieldError(field, validationErrors[0].Translate(v.translator))
		}
		return err
	}
	return nil
}
