package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"todos/internal/core/domain"
	"todos/internal/core/model/response"
)

// Validator adapts go-playground/validator to port.Validator. Field names are
// the json tag names so messages match what the client sent.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// Only a real JSON boolean passes; "true" or 1 do not.
	if err := validate.RegisterValidation("strictbool", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Bool
	}); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseTargetDate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}

	english := en.New()
	uni := ut.New(english, english)
	translator, found := uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	v := &Validator{validate: validate, translator: translator}
	v.addCustomTranslations()

	return v
}

func (v *Validator) register(tag, text string, params func(fe validator.FieldError) []string) {
	err := v.validate.RegisterTranslation(tag, v.translator, func(ut ut.Translator) error {
		return ut.Add(tag, text, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, params(fe)...)
		return t
	})

	if err != nil {
		panic(err)
	}
}

func (v *Validator) addCustomTranslations() {
	field := func(fe validator.FieldError) []string { return []string{fe.Field()} }
	fieldParam := func(fe validator.FieldError) []string { return []string{fe.Field(), fe.Param()} }

	v.register("required", "{0} is required", field)
	v.register("min", "{0} must be at least {1} characters long", fieldParam)
	v.register("max", "{0} must be at most {1} characters long", fieldParam)
	v.register("strictbool", "{0} must be a boolean", field)
	v.register("isodate", "{0} must be an ISO 8601 date or timestamp", field)
}

// Struct runs the raw validator; used by config loading.
func (v *Validator) Struct(s any) error {
	return v.validate.Struct(s)
}

func (v *Validator) Validate(s any) []domain.FieldError {
	return v.FieldErrors(v.validate.Struct(s))
}

func (v *Validator) FieldErrors(err error) []domain.FieldError {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		return []domain.FieldError{{Field: "body", Message: err.Error()}}
	}

	fieldErrors := make([]domain.FieldError, 0, len(validationErrors))

	for _, fieldError := range validationErrors {
		fieldErrors = append(fieldErrors, domain.FieldError{
			Field:   fieldError.Field(),
			Message: fieldError.Translate(v.translator),
		})
	}

	return fieldErrors
}

func FormatValidationErrors(errs []domain.FieldError) []response.ValidationError {
	formatted := make([]response.ValidationError, 0, len(errs))

	for _, fe := range errs {
		formatted = append(formatted, response.ValidationError{
			Field:   fe.Field,
			Message: fe.Message,
		})
	}

	return formatted
}
