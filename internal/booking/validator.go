package booking

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Поля формы, ошибки по которым показываются пользователю.
const (
	FieldName  = "name"
	FieldEmail = "email"
)

// ValidationResult — результат проверки контактов.
type ValidationResult struct {
	Valid       bool
	FieldErrors map[string]string
}

// Validator проверяет контактные данные по тегам validate.
type Validator struct {
	validate *validator.Validate
	logger   *zap.Logger
}

func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{validate: newStructValidator(), logger: logger}
}

// Validate возвращает Valid=true или ошибки по полям name/email.
// Прочие ошибки схемы не показываются, только пишутся в лог.
func (v *Validator) Validate(c Contact) ValidationResult {
	err := v.validate.Struct(c)
	if err == nil {
		return ValidationResult{Valid: true}
	}

	fieldErrors := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		v.logger.Warn("contact validation failed", zap.Error(err))
		return ValidationResult{Valid: false, FieldErrors: fieldErrors}
	}

	for _, fe := range verrs {
		switch fe.Field() {
		case FieldName, FieldEmail:
			if _, exists := fieldErrors[fe.Field()]; !exists {
				fieldErrors[fe.Field()] = fieldMessage(fe)
			}
		default:
			v.logger.Debug("unmapped contact validation issue",
				zap.String("field", fe.Namespace()),
				zap.String("tag", fe.Tag()),
			)
		}
	}

	return ValidationResult{Valid: false, FieldErrors: fieldErrors}
}

func fieldMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == FieldEmail && fe.Tag() == "email":
		return "Invalid email address"
	case fe.Tag() == "required" || fe.Tag() == "min":
		return fieldLabel(fe.Field()) + " is required"
	default:
		return fieldLabel(fe.Field()) + " is invalid"
	}
}

func fieldLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// newStructValidator настраивает validator так, чтобы имена полей брались из json-тегов.
func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
