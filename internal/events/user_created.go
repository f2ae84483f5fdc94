package events

import (
	"fmt"
	"strings"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/googleapis/google-cloudevents-go/firebase/authdata"
	"github.com/tidwall/sjson"
)

// UserCreated is the part of a Firebase Authentication user-created event the sync uses.
type UserCreated struct {
	UID         string
	Email       string
	DisplayName string
}

// DecodeUserCreated extracts the account record from a user-created CloudEvent.
func DecodeUserCreated(e *event.Event) (UserCreated, error) {
	if e.Type() != TypeAuthUserCreated {
		return UserCreated{}, fmt.Errorf("%w: %s", ErrUnexpectedType, e.Type())
	}

	var data authdata.AuthEventData
	if err := unmarshalData(e, &data, dropMetadata); err != nil {
		return UserCreated{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if strings.TrimSpace(data.GetUid()) == "" {
		return UserCreated{}, fmt.Errorf("%w: uid is required", ErrInvalidPayload)
	}

	return UserCreated{
		UID:         data.GetUid(),
		Email:       data.GetEmail(),
		DisplayName: data.GetDisplayName(),
	}, nil
}

// dropMetadata removes the account timestamps before decoding. They are never used and
// a malformed one must not block profile creation.
func dropMetadata(payload []byte) ([]byte, error) {
	return sjson.DeleteBytes(payload, "metadata")
}
