package outputs

import (
	"errors"

	"github.com/kmmndr/motion_analyzer/internal/config"
	"github.com/kmmndr/motion_analyzer/internal/log"
	"github.com/kmmndr/motion_analyzer/internal/motion"
)

// Publisher forwards analysis reports to external subscribers.
type Publisher interface {
	Publish(report *motion.MotionReport) error
	Close()
}

// NoopPublisher drops every report. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(*motion.MotionReport) error { return nil }

func (NoopPublisher) Close() {}

// NewPublisher connects to the configured MQTT broker, or returns a
// NoopPublisher when MQTT_URI is empty.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if cfg.MQTTURI == "" {
		log.Log.Info("outputs.NewPublisher(): no MQTT broker configured, notifications disabled")
		return NoopPublisher{}, nil
	}

	return connectPublisher(NewMQTTPublisher(ConfigureMQTT(cfg), cfg.MQTTTopic))
}

// connectPublisher keeps the publisher when the broker is only slow to answer:
// the client retries in the background and Publish fails until it connects.
// Any other failure disconnects the client.
func connectPublisher(publisher *MQTTPublisher) (Publisher, error) {
	err := publisher.Connect()
	if errors.Is(err, ErrConnectTimeout) {
		log.Log.Warning("outputs.NewPublisher(): broker unreachable, retrying in the background")
		return publisher, nil
	}
	if err != nil {
		publisher.Close()
		return nil, err
	}
	return publisher, nil
}
