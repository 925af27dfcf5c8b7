package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// EnvelopeKey — ключ верхнего уровня, под которым клиент кладёт заявку.
const EnvelopeKey = "@calendar/scheduler"

// Shape — какой из двух допустимых форматов тела прошёл проверку.
type Shape string

const (
	ShapeEnveloped Shape = "enveloped"
	ShapeRaw       Shape = "raw"
)

var ErrInvalidPayload = errors.New("payload matches neither enveloped nor raw shape")

// Формат тела на границе сервера. Указатели нужны, чтобы отличить
// отсутствующее поле от нулевого значения.
type wireSelection struct {
	Day   *float64 `json:"day" validate:"required"`
	Month *float64 `json:"month" validate:"required"`
	Year  *float64 `json:"year" validate:"required"`
}

type wireContact struct {
	Email *string `json:"email" validate:"required,email"`
	Name  *string `json:"name" validate:"required,min=1"`
}

type wireBody struct {
	DaySelection *wireSelection `json:"daySelection" validate:"required"`
	Contact      *wireContact   `json:"contact" validate:"required"`
	SelectedTime *string        `json:"selectedTime" validate:"required"`
}

var wireValidate = newStructValidator()

// EncodeEnveloped сериализует заявку в формате {EnvelopeKey: payload}.
func EncodeEnveloped(p Payload) ([]byte, error) {
	return json.Marshal(map[string]Payload{EnvelopeKey: p})
}

// EncodeRaw сериализует заявку без обёртки.
func EncodeRaw(p Payload) ([]byte, error) {
	return json.Marshal(p)
}

// ParseSubmission проверяет тело запроса по обоим форматам.
// Подходит любой из двух; третьего формата нет.
func ParseSubmission(raw []byte) (Shape, error) {
	// encoding/json подменяет битые байты на U+FFFD, а jsonb такое тело не примет
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: body is not valid UTF-8", ErrInvalidPayload)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var envErr error
	if inner, ok := top[EnvelopeKey]; ok {
		if envErr = checkBody(inner); envErr == nil {
			return ShapeEnveloped, nil
		}
	}

	rawErr := checkBody(raw)
	if rawErr == nil {
		return ShapeRaw, nil
	}

	if envErr != nil {
		return "", fmt.Errorf("%w: enveloped: %v; raw: %v", ErrInvalidPayload, envErr, rawErr)
	}
	return "", fmt.Errorf("%w: %v", ErrInvalidPayload, rawErr)
}

func checkBody(data []byte) error {
	var body wireBody
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	return wireValidate.Struct(body)
}
