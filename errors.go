package sortedlist

import (
	"errors"
	"fmt"
)

var (
	ErrElementAlreadyExists = fmt.Errorf("element already exists")
	ErrElementNotFound      = fmt.Errorf("element not found")
)

// ElementError reports the element an insert or update was rejected for.
type ElementError[T any] struct {
	Element T
	cause   error
}

func (e *ElementError[T]) Error() string {
	return fmt.Sprintf("%s: `%v`", e.cause.Error(), e.Element)
}

func (e *ElementError[T]) Unwrap() error {
	return e.cause
}

func alreadyExists[T any](element T) error {
	return &ElementError[T]{Element: element, cause: ErrElementAlreadyExists}
}

func notFound[T any](element T) error {
	return &ElementError[T]{Element: element, cause: ErrElementNotFound}
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrElementAlreadyExists)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrElementNotFound)
}
