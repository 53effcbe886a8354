package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateCodec_RoundTrip(t *testing.T) {
	codec := NewStateCodec("test-signing-key")

	tests := []struct {
		name  string
		state State
	}{
		{"user_subject", State{SubjectType: SubjectUser, UserID: 42}},
		{"restaurant_subject", State{SubjectType: SubjectRestaurant, UserID: 42, RestaurantID: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := codec.Encode(tt.state)
			decoded, err := codec.Decode(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.state, decoded)
		})
	}
}

func TestStateCodec_RejectsTamperedPayload(t *testing.T) {
	codec := NewStateCodec("test-signing-key")

	raw := codec.Encode(State{SubjectType: SubjectUser, UserID: 42})
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 2)

	// Swap the payload for a different subject while keeping the signature
	forged := NewStateCodec("test-signing-key").Encode(State{SubjectType: SubjectRestaurant, UserID: 42, RestaurantID: 999})
	forgedPayload := strings.Split(forged, ".")[0]

	_, err := codec.Decode(forgedPayload + "." + parts[1])
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestStateCodec_RejectsWrongKey(t *testing.T) {
	raw := NewStateCodec("key-one").Encode(State{SubjectType: SubjectUser, UserID: 1})

	_, err := NewStateCodec("key-two").Decode(raw)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestStateCodec_RejectsMalformedInput(t *testing.T) {
	codec := NewStateCodec("test-signing-key")

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no_signature", "just-a-string"},
		{"legacy_concatenation", "user-42-7"},
		{"too_many_parts", "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestStateCodec_RejectsUnknownSubjectType(t *testing.T) {
	codec := NewStateCodec("test-signing-key")

	raw := codec.Encode(State{SubjectType: "admin", UserID: 1})
	_, err := codec.Decode(raw)
	assert.ErrorIs(t, err, ErrMalformedState)
}
