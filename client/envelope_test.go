package client

import (
	"errors"
	"testing"

	"github.com/totegamma/nameless-go/apierror"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		violation bool
		remote    error
	}{
		{name: "success", body: `{"error":false,"exists":true,"id":3}`},
		{name: "missing error field", body: `{"exists":true}`, violation: true},
		{name: "error field not boolean", body: `{"error":"core:invalid_code"}`, violation: true},
		{name: "error field null", body: `{"error":null}`, violation: true},
		{name: "not an object", body: `[1,2,3]`, violation: true},
		{name: "json null", body: `null`, violation: true},
		{name: "not json", body: `<html>`, violation: true},
		{name: "error without namespace", body: `{"error":true,"code":"invalid_code"}`, violation: true},
		{name: "error without code", body: `{"error":true,"namespace":"core"}`, violation: true},
		{name: "known error", body: `{"error":true,"namespace":"core","code":"invalid_code"}`, remote: apierror.ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(200, []byte(tt.body))

			var pv *ProtocolViolation
			switch {
			case tt.violation:
				if !errors.As(err, &pv) {
					t.Fatalf("expected protocol violation, got %v", err)
				}
			case tt.remote != nil:
				if !errors.Is(err, tt.remote) {
					t.Fatalf("expected %v, got %v", tt.remote, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(doc.Raw()) != tt.body {
					t.Fatalf("raw body not preserved: %s", doc.Raw())
				}
			}
		})
	}
}

func TestDocumentFields(t *testing.T) {
	doc, err := Decode(200, []byte(`{"error":false,"exists":true,"id":3,"username":"alice"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var id int64
	if err := doc.DecodeField("id", &id); err != nil || id != 3 {
		t.Fatalf("decode field: %v %d", err, id)
	}
	if err := doc.DecodeField("missing", &id); err == nil {
		t.Fatalf("expected error for missing field")
	}

	var v struct {
		Username string `json:"username"`
	}
	if err := doc.Decode(&v); err != nil || v.Username != "alice" {
		t.Fatalf("decode: %v %+v", err, v)
	}
}

func TestParamsMarshalKeepsOrder(t *testing.T) {
	p := Params{}.Add("z", 1).Add("a", "two").Add("m", []string{"x"})
	b, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"z":1,"a":"two","m":["x"]}` {
		t.Fatalf("unexpected order: %s", b)
	}
	if p.Encode() != "z=1&a=two&m=%5Bx%5D" {
		t.Fatalf("unexpected encoding: %s", p.Encode())
	}
}
