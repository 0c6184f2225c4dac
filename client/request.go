package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Param is one ordered key/value pair.
type Param struct {
	Key   string
	Value any
}

// Params keeps insertion order, both in query strings and when marshaled as a
// JSON object body.
type Params []Param

func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

func (p Params) Get(key string) (any, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Encode renders key=value pairs joined by '&' with both sides
// percent-encoded.
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(queryValue(kv.Value)))
	}
	return b.String()
}

func queryValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valueBytes, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Request describes one API call. Build it with NewGet or NewPost; the zero
// value is not usable.
type Request struct {
	method string
	path   string
	query  Params
	body   any
}

// NewGet describes a GET of path with the given query parameters.
func NewGet(path string, query Params) Request {
	q := make(Params, len(query))
	copy(q, query)
	return Request{method: http.MethodGet, path: strings.Trim(path, "/"), query: q}
}

// NewPost describes a POST of path with body serialized as JSON. A nil body
// is sent as an empty object.
func NewPost(path string, body any) Request {
	return Request{method: http.MethodPost, path: strings.Trim(path, "/"), body: body}
}

func (r Request) Method() string { return r.method }

func (r Request) Path() string { return r.path }

func (r Request) Query() Params {
	q := make(Params, len(r.query))
	copy(q, r.query)
	return q
}

func (r Request) Body() any { return r.body }

func (r Request) validate() error {
	switch r.method {
	case http.MethodGet:
		if r.body != nil {
			return fmt.Errorf("%w: GET %s carries a body", ErrInvalidRequest, r.path)
		}
	case http.MethodPost:
		if len(r.query) > 0 {
			return fmt.Errorf("%w: POST %s carries query parameters", ErrInvalidRequest, r.path)
		}
	default:
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidRequest, r.method)
	}
	if r.path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRequest)
	}
	return nil
}

// Path joins route segments with '/'. Each segment is escaped so that a '/'
// inside an identifier stays part of its segment.
func Path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}
