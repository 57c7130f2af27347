package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/institute-api/internal/models"
)

func TestPublishMessage_MarshalError(t *testing.T) {
	// канал нельзя сериализовать в JSON, до брокера дело не доходит
	badMsg := struct {
		Ch chan int `json:"ch"`
	}{Ch: make(chan int)}

	err := PublishMessage(nil, LeadsExchange, leadRoutingKey, badMsg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
}

func TestLeadPublisher_PublishLead(t *testing.T) {
	uri := amqpURIForTest(t)

	publisher, err := NewLeadPublisher(uri)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, publisher.Close())
	}()

	event := models.LeadEvent{
		Kind:      models.LeadKindBrochure,
		Name:      "Jane",
		Email:     "jane@example.com",
		Phone:     "123",
		Subject:   "Digital Marketing",
		CreatedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.PublishLead(context.Background(), event))

	deliveries, err := publisher.ch.Consume("leads.captured", "test-consumer", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		var got models.LeadEvent
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, event, got)
		assert.Equal(t, "application/json", d.ContentType)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for lead event")
	}
}

func TestLeadPublisher_CanceledContext(t *testing.T) {
	p := &LeadPublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.PublishLead(ctx, models.LeadEvent{})
	assert.ErrorIs(t, err, context.Canceled)
}
