package remote

import "encoding/json"

// Wire types for the remote function batch protocol. A request carries a
// batch of positional argument tuples; a successful response carries one
// reply per call, aligned by index. A failure carries errorMessage instead
// of replies. All three functions (covering, covering_rect, distance) take
// only numeric arguments, so calls are float tuples on the wire.
//
// Covering replies are arrays of decimal strings rather than JSON numbers:
// a cell ID's magnitude exceeds the 2^53 safe-integer range of common JSON
// number representations, so the bits would not survive a float round trip.

// BatchRequest is a batch of positional calls.
type BatchRequest struct {
	RequestID string      `json:"requestId,omitempty"`
	Calls     [][]float64 `json:"calls"`
}

// BatchResponse carries either one reply per call or an error message.
type BatchResponse struct {
	Replies      []json.RawMessage `json:"replies,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
}
