package notify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// Subject types a notification channel can be bound to
const (
	SubjectUser       = "user"
	SubjectRestaurant = "restaurant"
)

var (
	ErrMalformedState = errors.New("malformed state parameter")
	ErrBadSignature   = errors.New("state signature mismatch")
)

// State carries the linking context through the third-party authorization
// redirect: who initiated the flow and which subject the resulting channel
// belongs to.
type State struct {
	SubjectType  string `json:"subject_type"`
	UserID       uint   `json:"user_id"`
	RestaurantID uint   `json:"restaurant_id,omitempty"`
}

// StateCodec signs and verifies state parameters with HMAC-SHA256 so a
// callback cannot be replayed with a tampered subject.
type StateCodec struct {
	key []byte
}

// NewStateCodec creates a codec using the given signing key
func NewStateCodec(key string) *StateCodec {
	return &StateCodec{key: []byte(key)}
}

// Encode serializes and signs the state for use as an OAuth state parameter
func (c *StateCodec) Encode(s State) string {
	payload, _ := json.Marshal(s)
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + c.sign(encoded)
}

// Decode verifies the signature and deserializes the state
func (c *StateCodec) Decode(raw string) (State, error) {
	var s State

	parts := strings.Split(raw, ".")
	if len(parts) != 2 {
		return s, ErrMalformedState
	}

	if !hmac.Equal([]byte(c.sign(parts[0])), []byte(parts[1])) {
		return s, ErrBadSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return s, ErrMalformedState
	}
	if err := json.Unmarshal(payload, &s); err != nil {
		return s, ErrMalformedState
	}
	if s.SubjectType != SubjectUser && s.SubjectType != SubjectRestaurant {
		return s, ErrMalformedState
	}
	return s, nil
}

func (c *StateCodec) sign(encoded string) string {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
