package sdk

import (
	"bytes"
	"encoding/json"
)

// envelope is the {success, data} wrapper some endpoints use.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// unwrapEnvelope returns data when body is a successful envelope and body otherwise.
func unwrapEnvelope(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return body
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return body
	}
	if env.Success != nil && *env.Success {
		return env.Data
	}
	return body
}

func decodePayload(body []byte, out any) error {
	if out == nil {
		return nil
	}
	payload := unwrapEnvelope(body)
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], payload...)
		return nil
	}
	if len(bytes.TrimSpace(payload)) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil
	}
	return json.Unmarshal(payload, out)
}
