package guidebook

import (
	"errors"
	"fmt"
	"strings"
)

// Error types
var (
	// ErrCountryNotFound indicates a country was not found
	ErrCountryNotFound = errors.New("country not found")

	// ErrCountryDetailNotFound indicates a country detail record was not found
	ErrCountryDetailNotFound = errors.New("country detail not found")

	// ErrCityNotFound indicates a city detail record was not found
	ErrCityNotFound = errors.New("city not found")

	// ErrContentObjectNotFound indicates a content library object was not found
	ErrContentObjectNotFound = errors.New("content object not found")

	// ErrGuidebookNotFound indicates a guidebook was not found
	ErrGuidebookNotFound = errors.New("guidebook not found")

	// ErrDistrictNotFound indicates a district was not found on the city
	ErrDistrictNotFound = errors.New("district not found")

	// ErrInvalidContentType indicates an unknown content library type tag
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrBodyTypeMismatch indicates a content body that does not match its type tag
	ErrBodyTypeMismatch = errors.New("content body does not match type")

	// ErrUnknownField indicates a field name outside the inheritable set
	ErrUnknownField = errors.New("unknown inheritable field")

	// ErrUnknownCategory indicates an unknown district content category
	ErrUnknownCategory = errors.New("unknown district category")

	// ErrUnknownRefArray indicates an unknown guidebook bulk reference array name
	ErrUnknownRefArray = errors.New("unknown reference array")

	// ErrIndexOutOfRange indicates a reference list index outside the list bounds
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrDuplicateRef indicates an id already present in a reference list
	ErrDuplicateRef = errors.New("duplicate reference id")
)

// ValidationError reports required guidebook fields missing at assemble time.
// The save is rejected; nothing is persisted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ContentObjectError represents an error related to content library operations
type ContentObjectError struct {
	ObjectID string
	Op       string
	Err      error
}

func (e *ContentObjectError) Error() string {
	return fmt.Sprintf("content object operation %s failed for object %s: %v", e.Op, e.ObjectID, e.Err)
}

func (e *ContentObjectError) Unwrap() error {
	return e.Err
}

// GuidebookError represents an error related to guidebook operations
type GuidebookError struct {
	GuidebookID string
	Op          string
	Err         error
}

func (e *GuidebookError) Error() string {
	return fmt.Sprintf("guidebook operation %s failed for guidebook %s: %v", e.Op, e.GuidebookID, e.Err)
}

func (e *GuidebookError) Unwrap() error {
	return e.Err
}
