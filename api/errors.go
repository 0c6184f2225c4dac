package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/totegamma/nameless-go"
)

// NotFoundError is returned when the website answers a lookup successfully
// but reports that the resource does not exist.
type NotFoundError struct {
	Resource   string
	Identifier string
}

func (e NotFoundError) Error() string {
	resource := e.Resource
	if resource == "" {
		resource = "user"
	}
	if e.Identifier == "" {
		return resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", resource, e.Identifier)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing users and groups.
var ErrNotFound = NotFoundError{}

var ErrIdentifierMismatch = errors.New("identifiers refer to different users")

// ErrMissingAttribute is returned by (*User).Attribute when the user exists but
// the document has no such field.
var ErrMissingAttribute = errors.New("attribute not present in user document")

// MismatchError reports which supplied identifier disagreed with the resolved
// user.
type MismatchError struct {
	Resolved nameless.Identifier
	Alias    nameless.Identifier
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: %s does not match resolved user %s", ErrIdentifierMismatch, e.Alias, e.Resolved)
}

func (e *MismatchError) Unwrap() error { return ErrIdentifierMismatch }

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
