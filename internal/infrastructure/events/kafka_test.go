package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblick1327/shipping/internal/domain"
)

func TestBuildMessage(t *testing.T) {
	occurred := time.Date(2026, time.August, 24, 14, 5, 0, 0, time.UTC)
	event := &domain.BOLGeneratedEvent{
		RunID:        "run-1",
		ShipmentID:   "SHP 1002",
		CarrierName:  "FF",
		OrderNumbers: []string{"12345678", "87654321"},
		BOLPath:      "/out/FF_SHP1002_BOL.pdf",
		LabelPath:    "/out/FF_SHP1002_Label.pdf",
		LabelPages:   4,
		Timestamp:    occurred,
	}

	msg, err := buildMessage("SHP 1002", event)
	require.NoError(t, err)

	assert.Equal(t, []byte("SHP 1002"), msg.Key)
	assert.Equal(t, occurred, msg.Time)

	var decoded domain.BOLGeneratedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, 4, decoded.LabelPages)

	var eventType, contentType, occurredAt string
	for _, h := range msg.Headers {
		switch h.Key {
		case "event-type":
			eventType = string(h.Value)
		case "content-type":
			contentType = string(h.Value)
		case "occurred-at":
			occurredAt = string(h.Value)
		}
	}
	assert.Equal(t, "shipping.bol.generated", eventType)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "2026-08-24T14:05:00Z", occurredAt)
}

func TestBuildMessageFailedRun(t *testing.T) {
	event := &domain.RunFailedEvent{
		RunID:     "run-2",
		Stage:     "rendering",
		Reason:    "label render failed",
		Timestamp: time.Date(2026, time.August, 24, 14, 6, 0, 0, time.UTC),
	}

	msg, err := buildMessage("run-2", event)
	require.NoError(t, err)

	var decoded domain.RunFailedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "rendering", decoded.Stage)
	assert.Equal(t, "label render failed", decoded.Reason)
}

func TestNopPublisher(t *testing.T) {
	var publisher domain.EventPublisher = NopPublisher{}

	err := publisher.Publish(t.Context(), "key", &domain.RunFailedEvent{Timestamp: time.Now()})
	assert.NoError(t, err)
	assert.NoError(t, publisher.Close())
}
