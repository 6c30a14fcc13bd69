package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/production-costing/pkg/apperr"
)

func headerValue(msg *sarama.ProducerMessage, key string) string {
	for _, h := range msg.Headers {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublishSaleRecorded(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicSaleRecorded {
			return errors.Newf("unexpected topic %s", msg.Topic)
		}
		if headerValue(msg, "event_type") != EventTypeSaleRecorded {
			return errors.New("missing event_type header")
		}
		key, _ := msg.Key.Encode()
		if string(key) != "SALE-1" {
			return errors.Newf("unexpected key %s", key)
		}
		body, _ := msg.Value.Encode()
		var ev SaleRecordedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return err
		}
		if !ev.Profit.Equal(decimal.RequireFromString("1.5")) || ev.EventID == "" {
			return errors.Newf("unexpected payload %s", body)
		}
		return nil
	})

	p := NewPublisherWithProducer(producer)
	err := p.PublishSaleRecorded(context.Background(), SaleRecordedEvent{
		SaleID:        7,
		ReceiptNumber: "SALE-1",
		Quantity:      10,
		UnitPrice:     decimal.RequireFromString("0.25"),
		UnitCost:      decimal.RequireFromString("0.10"),
		Total:         decimal.RequireFromString("2.5"),
		Profit:        decimal.RequireFromString("1.5"),
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishPurchaseRecordedFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer)
	id, err := p.PublishPurchaseRecorded(context.Background(), PurchaseRecordedEvent{
		EventID:     "evt-1",
		ProductName: "flour",
		Kind:        "bulk",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	assert.Equal(t, "evt-1", id)
	require.NoError(t, p.Close())
}

func consumerMessage(t *testing.T, eventType string, v interface{}) *sarama.ConsumerMessage {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	msg := &sarama.ConsumerMessage{Topic: TopicPurchaseRecorded, Value: body}
	if eventType != "" {
		msg.Headers = append(msg.Headers,
			&sarama.RecordHeader{Key: []byte("event_type"), Value: []byte(eventType)},
			&sarama.RecordHeader{Key: []byte("event_id"), Value: []byte("evt-9")},
		)
	}
	return msg
}

func TestDispatchPurchaseRecorded(t *testing.T) {
	c := newConsumer([]string{TopicPurchaseRecorded})
	var got PurchaseRecordedEvent
	c.OnPurchaseRecorded(func(ctx context.Context, ev PurchaseRecordedEvent) error {
		got = ev
		return nil
	})

	err := c.dispatch(context.Background(), consumerMessage(t, EventTypePurchaseRecorded, PurchaseRecordedEvent{
		EventID:      "evt-9",
		ProductName:  "yeast",
		Kind:         "package",
		Unit:         "g",
		PackageCount: decimal.NewNullDecimal(decimal.NewFromInt(2)),
		PackageSize:  decimal.NewNullDecimal(decimal.NewFromInt(500)),
		PackagePrice: decimal.NewNullDecimal(decimal.NewFromInt(4)),
	}))
	require.NoError(t, err)
	assert.Equal(t, "yeast", got.ProductName)
	assert.True(t, got.PackageSize.Valid)
	assert.True(t, got.PackageSize.Decimal.Equal(decimal.NewFromInt(500)))
}

func TestDispatchRejects(t *testing.T) {
	c := newConsumer(nil)
	handlerErr := errors.New("boom")
	c.OnPurchaseRecorded(func(context.Context, PurchaseRecordedEvent) error { return handlerErr })

	err := c.dispatch(context.Background(), consumerMessage(t, "", PurchaseRecordedEvent{}))
	assert.True(t, errors.Is(err, errNoEventType))

	err = c.dispatch(context.Background(), consumerMessage(t, EventTypeSaleRecorded, SaleRecordedEvent{}))
	assert.True(t, errors.Is(err, errNoHandler))

	err = c.dispatch(context.Background(), consumerMessage(t, EventTypePurchaseRecorded, PurchaseRecordedEvent{}))
	assert.True(t, errors.Is(err, handlerErr))

	bad := &sarama.ConsumerMessage{
		Value:   []byte("{"),
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypePurchaseRecorded)}},
	}
	assert.Error(t, c.dispatch(context.Background(), bad))
}

type recordingSession struct {
	sarama.ConsumerGroupSession
	marked []int64
}

func (s *recordingSession) Context() context.Context { return context.Background() }

func (s *recordingSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type channelClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *channelClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func claimOf(msgs ...*sarama.ConsumerMessage) *channelClaim {
	ch := make(chan *sarama.ConsumerMessage, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	close(ch)
	return &channelClaim{messages: ch}
}

func TestConsumeClaimLeavesRetryableFailuresUnmarked(t *testing.T) {
	c := newConsumer([]string{TopicPurchaseRecorded})
	calls := 0
	c.OnPurchaseRecorded(func(context.Context, PurchaseRecordedEvent) error {
		calls++
		return apperr.Wrap(errors.New("connection refused"), apperr.ErrStoreUnavailable, "begin tx")
	})

	first := consumerMessage(t, EventTypePurchaseRecorded, PurchaseRecordedEvent{ProductName: "flour"})
	first.Offset = 10
	second := consumerMessage(t, EventTypePurchaseRecorded, PurchaseRecordedEvent{ProductName: "sugar"})
	second.Offset = 11

	session := &recordingSession{}
	err := (&consumerGroupHandler{consumer: c}).ConsumeClaim(session, claimOf(first, second))

	require.Error(t, err)
	assert.True(t, apperr.IsRetryable(err))
	assert.Empty(t, session.marked)
	assert.Equal(t, 1, calls)
}

func TestConsumeClaimMarksTerminalFailures(t *testing.T) {
	c := newConsumer([]string{TopicPurchaseRecorded})
	c.OnPurchaseRecorded(func(_ context.Context, ev PurchaseRecordedEvent) error {
		if ev.ProductName == "dup" {
			return apperr.New(apperr.ErrAlreadyExists, "purchase event %s", ev.EventID)
		}
		return nil
	})

	dup := consumerMessage(t, EventTypePurchaseRecorded, PurchaseRecordedEvent{ProductName: "dup"})
	dup.Offset = 3
	ok := consumerMessage(t, EventTypePurchaseRecorded, PurchaseRecordedEvent{ProductName: "flour"})
	ok.Offset = 4
	orphan := consumerMessage(t, "", PurchaseRecordedEvent{})
	orphan.Offset = 5

	session := &recordingSession{}
	err := (&consumerGroupHandler{consumer: c}).ConsumeClaim(session, claimOf(dup, ok, orphan))

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 5}, session.marked)
}
