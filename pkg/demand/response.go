package demand

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
)

// Response is a decoded JSON response body, passed through untouched. An
// object body holds a map[string]any, an array body holds []any, and a scalar
// body holds a string, float64, bool or nil.
type Response struct {
	value any
}

// NewResponse wraps an already decoded JSON value.
func NewResponse(value any) *Response {
	return &Response{value: value}
}

// Value returns the decoded body.
func (r *Response) Value() any {
	if r == nil {
		return nil
	}
	return r.value
}

// Object returns the body if it is a JSON object, or nil.
func (r *Response) Object() map[string]any {
	obj, _ := r.Value().(map[string]any)
	return obj
}

// Data returns the "data" member of the response envelope, if present.
func (r *Response) Data() any {
	return r.Object()["data"]
}

// StatusMessage returns the "status.message" member of the response envelope,
// or an empty string if it is missing or the body is not an object.
func (r *Response) StatusMessage() string {
	obj := r.Object()
	if obj == nil {
		return ""
	}

	var envelope struct {
		Status struct {
			Message string `mapstructure:"message"`
		} `mapstructure:"status"`
	}
	if err := mapstructure.Decode(obj, &envelope); err != nil {
		return ""
	}
	return envelope.Status.Message
}

func (r *Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	r.value = value
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r *Response) MarshalYAML() (any, error) {
	return r.Value(), nil
}
