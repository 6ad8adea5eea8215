package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the generic success reply: {"message": ..., "data": ...}.
type Envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ServerMessage is the failure reply carrying only a message.
type ServerMessage struct {
	Message string `json:"message"`
}

// ErrEmptyResponse is the transport failure signal: the verb helpers return
// empty bytes for any network or encoding error, with no further detail.
var ErrEmptyResponse = errors.New("empty response from server")

// ErrMalformedResponse marks a non-empty body that decodes as neither the
// success envelope nor the failure message.
var ErrMalformedResponse = errors.New("malformed server response")

// ErrNoData marks a reply that decodes as JSON but carries no data payload.
// The server only omits data on failure replies, so callers hand the raw
// bytes to the shared error handler like any other failure.
var ErrNoData = errors.New("server reply carries no data")

// DecodeEnvelope decodes the success envelope for a payload type. A bare
// {"message": ...} failure body would unmarshal into the envelope with a
// zero-value payload, so data is decoded in two stages and its absence is
// an error, never a silent zero value.
func DecodeEnvelope[T any](raw []byte) (*Envelope[T], error) {
	if len(raw) == 0 {
		return nil, ErrEmptyResponse
	}
	var wire struct {
		Message string           `json:"message"`
		Data    *json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if wire.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoData, wire.Message)
	}
	env := Envelope[T]{Message: wire.Message}
	if err := json.Unmarshal(*wire.Data, &env.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &env, nil
}

// DecodeMessage decodes the bare failure envelope.
func DecodeMessage(raw []byte) (*ServerMessage, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyResponse
	}
	var msg ServerMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &msg, nil
}

func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}
