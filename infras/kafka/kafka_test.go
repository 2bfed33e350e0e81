package kafka_test

import (
	"meetroom/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "booking-1", Value: event{ID: "booking-1", Status: "confirmed"}}

	res, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("booking-1"), res.Key)
	assert.JSONEq(t, `{"id":"booking-1","status":"confirmed"}`, string(res.Value))
}

func TestMessage_ToKafkaMessageUnsupportedValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeKafkaMessage(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := kafka.DecodeKafkaMessage[event](kafkaGo.Message{Value: []byte(`{"id":"b","status":"pending"}`)})
		require.NoError(t, err)
		assert.Equal(t, event{ID: "b", Status: "pending"}, got)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := kafka.DecodeKafkaMessage[event](kafkaGo.Message{Value: []byte("{")})
		assert.Error(t, err)
	})
}
