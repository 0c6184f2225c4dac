// Package apierror maps the (namespace, code) pairs the website reports on
// failed requests to a closed set of error values.
package apierror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Key identifies one server error.
type Key struct {
	Namespace string
	Code      string
}

func (k Key) String() string {
	return k.Namespace + ":" + k.Code
}

// Error is a known server error. Each (namespace, code) pair has exactly one
// *Error value, so classified errors compare with == and errors.Is.
type Error struct {
	Namespace string
	Code      string
	Message   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.Namespace, e.Code, e.Message)
}

func (e *Error) Key() Key {
	return Key{Namespace: e.Namespace, Code: e.Code}
}

// UnrecognizedError is returned for pairs the table does not know, typically
// errors introduced by a newer website version.
type UnrecognizedError struct {
	Namespace string
	Code      string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("%s:%s: unrecognized remote error", e.Namespace, e.Code)
}

func (e *UnrecognizedError) Key() Key {
	return Key{Namespace: e.Namespace, Code: e.Code}
}

var table = index(known)

func index(errs []*Error) map[Key]*Error {
	m := make(map[Key]*Error, len(errs))
	for _, e := range errs {
		if _, dup := m[e.Key()]; dup {
			panic("apierror: duplicate table entry " + e.Key().String())
		}
		m[e.Key()] = e
	}
	return m
}

// Classify returns the *Error registered for the pair, or an
// *UnrecognizedError carrying the raw strings. It never returns nil.
func Classify(namespace, code string) error {
	if e, ok := table[Key{Namespace: namespace, Code: code}]; ok {
		return e
	}
	return &UnrecognizedError{Namespace: namespace, Code: code}
}

// Lookup reports the table entry for key, if any.
func Lookup(key Key) (*Error, bool) {
	e, ok := table[key]
	return e, ok
}

// Known returns every registered error sorted by key.
func Known() []*Error {
	out := make([]*Error, len(known))
	copy(out, known)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key().String() < out[j].Key().String()
	})
	return out
}

// KeyOf extracts the (namespace, code) pair from any error produced by this
// package, however deeply wrapped.
func KeyOf(err error) (Key, bool) {
	var known *Error
	if errors.As(err, &known) {
		return known.Key(), true
	}
	var unknown *UnrecognizedError
	if errors.As(err, &unknown) {
		return unknown.Key(), true
	}
	return Key{}, false
}

// ResponseError is a failure reported by the website through the error
// envelope. It unwraps to the classified error.
type ResponseError struct {
	Err     error
	Status  int
	Route   string
	Meta    map[string]any
	Context map[string]string
}

func (e *ResponseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Route != "" {
		b.WriteString(" (")
		b.WriteString(e.Route)
		b.WriteString(")")
	}
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, e.Context[k])
		}
	}
	return b.String()
}

func (e *ResponseError) Unwrap() error { return e.Err }

func (e *ResponseError) Key() Key {
	k, _ := KeyOf(e.Err)
	return k
}

// WithContext returns a copy of e with one more caller-supplied context entry.
// The receiver is not modified.
func (e *ResponseError) WithContext(key, value string) *ResponseError {
	cp := *e
	m := make(map[string]string, len(e.Context)+1)
	for k, v := range e.Context {
		m[k] = v
	}
	m[key] = value
	cp.Context = m
	return &cp
}

// WithContext attaches context to err when it is a *ResponseError and returns
// err unchanged otherwise.
func WithContext(err error, key, value string) error {
	var re *ResponseError
	if !errors.As(err, &re) {
		return err
	}
	if re == err {
		return re.WithContext(key, value)
	}
	// keep outer wrapping intact; only the first ResponseError is annotated
	re.Context = re.WithContext(key, value).Context
	return err
}
