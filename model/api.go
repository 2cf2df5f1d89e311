package model

import "encoding/json"

// ApiErrorResponse is the loosely typed error body returned by the contacts API.
type ApiErrorResponse map[string]any

func (e ApiErrorResponse) Message() string {
	if msg, ok := e["message"].(string); ok {
		return msg
	}

	return e.String()
}

func (e ApiErrorResponse) String() string {
	bytes, err := json.Marshal(e)
	if err != nil {
		return "cannot define error response"
	}

	return string(bytes)
}
