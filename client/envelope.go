package client

import (
	"encoding/json"
	"errors"

	"github.com/totegamma/nameless-go/apierror"
)

const (
	fieldError     = "error"
	fieldNamespace = "namespace"
	fieldCode      = "code"
)

// Document is a successful response body.
type Document struct {
	raw    []byte
	fields map[string]json.RawMessage
}

// NewDocument wraps an already decoded success body, e.g. one entry of a
// listing response.
func NewDocument(raw []byte) (Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Document{}, err
	}
	if fields == nil {
		return Document{}, errors.New("document is not a JSON object")
	}
	return Document{raw: raw, fields: fields}, nil
}

// Raw returns the body bytes exactly as received. Callers must not modify it.
func (d Document) Raw() []byte { return d.raw }

func (d Document) Field(key string) (json.RawMessage, bool) {
	v, ok := d.fields[key]
	return v, ok
}

func (d Document) Decode(v any) error {
	return json.Unmarshal(d.raw, v)
}

// DecodeField unmarshals a single top-level field into v.
func (d Document) DecodeField(key string, v any) error {
	raw, ok := d.fields[key]
	if !ok {
		return &ProtocolViolation{Status: 200, Reason: "missing field " + key}
	}
	return json.Unmarshal(raw, v)
}

// Decode interprets a response body. A body without the boolean error field
// is a *ProtocolViolation; error:true yields an *apierror.ResponseError
// wrapping the classified error.
func Decode(status int, body []byte) (Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Document{}, &ProtocolViolation{Status: status, Reason: "body is not a JSON object", Err: err}
	}
	if fields == nil {
		return Document{}, &ProtocolViolation{Status: status, Reason: "body is not a JSON object"}
	}

	rawFlag, ok := fields[fieldError]
	if !ok {
		return Document{}, &ProtocolViolation{Status: status, Reason: "missing error field"}
	}
	var failed bool
	if string(rawFlag) == "null" {
		return Document{}, &ProtocolViolation{Status: status, Reason: "error field is not a boolean"}
	}
	if err := json.Unmarshal(rawFlag, &failed); err != nil {
		return Document{}, &ProtocolViolation{Status: status, Reason: "error field is not a boolean", Err: err}
	}

	if !failed {
		return Document{raw: body, fields: fields}, nil
	}

	namespace, err := stringField(fields, fieldNamespace)
	if err != nil {
		return Document{}, &ProtocolViolation{Status: status, Reason: "error envelope without namespace", Err: err}
	}
	code, err := stringField(fields, fieldCode)
	if err != nil {
		return Document{}, &ProtocolViolation{Status: status, Reason: "error envelope without code", Err: err}
	}

	var meta map[string]any
	for k, v := range fields {
		if k == fieldError || k == fieldNamespace || k == fieldCode {
			continue
		}
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			continue
		}
		if meta == nil {
			meta = make(map[string]any)
		}
		meta[k] = value
	}

	return Document{}, &apierror.ResponseError{
		Err:    apierror.Classify(namespace, code),
		Status: status,
		Meta:   meta,
	}
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", errors.New("missing " + key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}
