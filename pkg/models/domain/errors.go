package domain

import (
	"errors"
	"fmt"
	"strings"
)

// RemediationHint is appended to every failed-run message.
const RemediationHint = "Ensure that the parameters 'Level,' 'Name,' and 'Area' exist. " +
	"Additionally, verify that the area/room names are correctly typed and separated by commas."

var ErrConfiguration = errors.New("invalid configuration")

type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// MissingPropertyError reports a required path that resolved in no element.
type MissingPropertyError struct {
	Path string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("property %q was not found on any element", e.Path)
}

// AreaTypeError reports an area value that is not numeric.
type AreaTypeError struct {
	Path      string
	ElementID string
	Value     any
}

func (e *AreaTypeError) Error() string {
	return fmt.Sprintf("element %q: property %q holds %T (%v), expected a number", e.ElementID, e.Path, e.Value, e.Value)
}

// EmptyResultError reports that no element matched the selected categories.
type EmptyResultError struct {
	Categories []string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no elements found for categories: %s", strings.Join(e.Categories, ", "))
}
