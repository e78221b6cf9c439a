// pkg/codec/json.go
package codec

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Codec renders response bodies for the HTTP surface. The dispatch layer
// only ever encodes; request bodies are the handlers' business.
type Codec interface {
	Marshal(v any) ([]byte, error)
	ContentType() string
}

// JSON encodes without HTML escaping; bodies go to API clients, not into
// markup.
var JSON Codec = jsonCodec{}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (jsonCodec) ContentType() string { return "application/json" }

// WriteJSON encodes v with JSON and writes it under the given status.
// Nothing touches the ResponseWriter when encoding fails, so callers can
// still answer with an error status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	raw, err := JSON.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", JSON.ContentType())
	w.WriteHeader(status)
	if len(raw) == 0 {
		raw = []byte(`{}`)
	}
	_, err = w.Write(raw)
	return err
}
