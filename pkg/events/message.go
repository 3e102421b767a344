package events

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Metadata keys set by NewMessage.
const (
	MetaEventID      = "event_id"
	MetaEventVersion = "event_version"
)

// NewMessage JSON-encodes payload into a Watermill message tagged with the
// event's ID and schema version. Subscribers use event_id to drop duplicates.
func NewMessage(eventID uuid.UUID, version int, payload any) (*message.Message, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), b)
	msg.Metadata.Set(MetaEventID, eventID.String())
	msg.Metadata.Set(MetaEventVersion, strconv.Itoa(version))
	return msg, nil
}

// Decode unmarshals msg's payload into dst.
func Decode(msg *message.Message, dst any) error {
	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		return fmt.Errorf("events: decode %s: %w", msg.Metadata.Get(MetaEventID), err)
	}
	return nil
}
