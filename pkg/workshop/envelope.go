package workshop

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Version tags every persisted or exported document.
const Version = "2.0.0"

var ErrEmptyEnvelope = errors.New("envelope has no data")

// Envelope is the storage and export wrapper around a Document.
type Envelope struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      *Document `json:"data"`
}

func Wrap(doc Document, now time.Time) Envelope {
	d := doc.Clone()
	return Envelope{
		Version:   Version,
		Timestamp: now.UTC(),
		Data:      &d,
	}
}

// Unwrap returns the wrapped document. Older versions are passed through
// unchanged; migrated reports whether the version differed so callers can log it.
func Unwrap(env Envelope) (doc Document, migrated bool, err error) {
	if env.Data == nil {
		return Document{}, false, ErrEmptyEnvelope
	}
	return env.Data.Clone(), env.Version != Version, nil
}

// DecodeEnvelope parses raw JSON. A bare document without wrapper is accepted
// as well, since early exports were written that way.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Data != nil {
		return env, nil
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Envelope{}, fmt.Errorf("decode document: %w", err)
	}
	return Envelope{Data: &doc}, nil
}
