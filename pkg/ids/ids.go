// Package ids генерирует и валидирует непрозрачные идентификаторы сущностей.
package ids

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidID возвращается, когда идентификатор имеет неверный формат
var ErrInvalidID = errors.New("invalid identifier")

// New генерирует новый идентификатор (UUID v4)
func New() string {
	return uuid.NewString()
}

// Validate проверяет, что строка является корректным идентификатором.
// Ошибка формата отличается от "не найдено" и должна возвращаться до обращения к хранилищу.
func Validate(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	// uuid.Parse принимает также формы в фигурных скобках и urn:uuid:
	if parsed.String() != id {
		return fmt.Errorf("%w: %q is not canonical", ErrInvalidID, id)
	}
	return nil
}

// ValidateAll проверяет набор идентификаторов, останавливаясь на первом некорректном
func ValidateAll(idList ...string) error {
	for _, id := range idList {
		if err := Validate(id); err != nil {
			return err
		}
	}
	return nil
}
