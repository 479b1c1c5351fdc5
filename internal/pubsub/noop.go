package pubsub

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// noopClient encodes events but publishes nowhere. It is used when no GCP project is configured.
type noopClient struct{}

// NewNoop returns a PubSubClient that only logs.
func NewNoop() PubSubClient {
	return noopClient{}
}

func (noopClient) SendMessage(ctx context.Context, topic EventType, data any) error {
	encoded, err := msgpack.Marshal(data)
	if err != nil {
		return err
	}
	log.Debug("Pub/Sub disabled, dropping event", "topic", topic, "bytes", len(encoded))
	return nil
}

func (noopClient) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}
