package eventtypes

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateEventType проверяет итоговое состояние типа события перед записью
func validateEventType(e *domain.EventType) error {
	if n := utf8.RuneCountInString(e.Title); n < domain.MinTitleLength || n > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must be %d-%d characters", ErrInvalidInput, domain.MinTitleLength, domain.MaxTitleLength)
	}
	if !slug.IsSlug(e.Slug) {
		return fmt.Errorf("%w: slug %q is not url-safe", ErrInvalidInput, e.Slug)
	}
	if n := len(e.Slug); n < domain.MinSlugLength || n > domain.MaxSlugLength {
		return fmt.Errorf("%w: slug must be %d-%d characters", ErrInvalidInput, domain.MinSlugLength, domain.MaxSlugLength)
	}
	if e.Description != nil && utf8.RuneCountInString(*e.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if e.Duration < domain.MinEventDuration || e.Duration > domain.MaxEventDuration {
		return fmt.Errorf("%w: duration must be %d-%d minutes", ErrInvalidInput, domain.MinEventDuration, domain.MaxEventDuration)
	}
	if !colorPattern.MatchString(e.Color) {
		return fmt.Errorf("%w: color %q is not a hex color", ErrInvalidInput, e.Color)
	}
	if err := validateBuffer("bufferTimeBefore", e.BufferTimeBefore); err != nil {
		return err
	}
	return validateBuffer("bufferTimeAfter", e.BufferTimeAfter)
}

func validateBuffer(field string, value int) error {
	if value < domain.MinBufferMinutes || value > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: %s must be %d-%d minutes", ErrInvalidInput, field, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}
	return nil
}

// slugFor возвращает заданный slug или генерирует его из заголовка
func slugFor(title string, explicit *string) string {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		return strings.TrimSpace(*explicit)
	}
	return slug.Make(title)
}
