// Package checkpoint persists run snapshots as files. It implements the
// train.Storage contract with a directory of JSON checkpoints and a marker
// file pointing at the latest one.
package checkpoint

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sarchlab/trainkit/train"
)

// Payload is what one checkpoint file holds: the model weights, when the
// model exposes them, and the run snapshot.
type Payload struct {
	Tag    string         `json:"tag"`
	Time   time.Time      `json:"time"`
	Model  map[string]any `json:"model,omitempty"`
	Runner train.Snapshot `json:"runner"`
}

// Codec determines how payloads are encoded on disk.
type Codec interface {
	Encode(w io.Writer, p Payload) error
	Decode(r io.Reader) (Payload, error)
}

// JSONCodec encodes payloads as JSON.
type JSONCodec struct{}

// Encode writes the payload as JSON to the provided writer.
func (c JSONCodec) Encode(w io.Writer, p Payload) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(p)
}

// Decode reads a JSON payload from the reader.
func (c JSONCodec) Decode(r io.Reader) (Payload, error) {
	decoder := json.NewDecoder(r)

	var p Payload

	err := decoder.Decode(&p)
	if err != nil {
		return Payload{}, err
	}

	return p, nil
}
