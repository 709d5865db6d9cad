package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"grain_dryer/internal/logger"
	"grain_dryer/internal/service"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Options configures the MQTT ingestion path.
type Options struct {
	Broker   string
	Topic    string
	ClientID string
}

// Ingestor subscribes to the device's readings topic and feeds each
// payload through the same pipeline as the HTTP ingestion endpoint.
// Devices in the field may publish over MQTT instead of POSTing.
type Ingestor struct {
	client    paho.Client
	topic     string
	broadcast service.Broadcast
	log       *logger.Logger
}

func NewIngestor(opts Options, broadcast service.Broadcast, log *logger.Logger) *Ingestor {
	clientOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true)

	return &Ingestor{
		client:    paho.NewClient(clientOpts),
		topic:     opts.Topic,
		broadcast: broadcast,
		log:       log,
	}
}

// Start connects and subscribes. Malformed payloads are logged and
// dropped; a bad message must never stop the stream.
func (i *Ingestor) Start(ctx context.Context) error {
	if token := i.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}

	handler := func(_ paho.Client, msg paho.Message) {
		var in service.ReadingInput
		if err := json.Unmarshal(msg.Payload(), &in); err != nil {
			if i.log != nil {
				i.log.Warnw("mqtt_payload_invalid", "topic", msg.Topic(), "err", err)
			}
			return
		}
		if _, err := i.broadcast.IngestReading(ctx, in); err != nil {
			if i.log != nil {
				i.log.Errorw("mqtt_ingest_failed", "topic", msg.Topic(), "err", err)
			}
		}
	}

	if token := i.client.Subscribe(i.topic, 0, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe %q: %w", i.topic, token.Error())
	}

	if i.log != nil {
		i.log.Infow("mqtt_ingestor_started", "topic", i.topic)
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight messages a
// short window to complete.
func (i *Ingestor) Close() {
	i.client.Disconnect(250)
}
