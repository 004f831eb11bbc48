package outputs

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/kmmndr/motion_analyzer/internal/config"
	"github.com/kmmndr/motion_analyzer/internal/log"
	"github.com/kmmndr/motion_analyzer/internal/motion"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 2 * time.Second
)

var (
	ErrNotConnected   = errors.New("mqtt not connected")
	ErrConnectTimeout = errors.New("mqtt connection timeout")
)

func ConfigureMQTT(cfg *config.Config) mqtt.Client {
	opts := mqtt.NewClientOptions()

	opts.AddBroker(cfg.MQTTURI)
	log.Log.Info("outputs.ConfigureMQTT(): set broker uri " + cfg.MQTTURI)

	if cfg.MQTTUsername != "" || cfg.MQTTPassword != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
		log.Log.Info("outputs.ConfigureMQTT(): set username " + cfg.MQTTUsername)
	}

	// Random suffix avoids client id conflicts between replicas.
	clientID := cfg.MQTTTopic + "-" + strconv.Itoa(rand.Intn(10000))
	opts.SetClientID(clientID)

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(30 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		log.Log.Info("outputs.ConfigureMQTT(): " + clientID + " connected to " + cfg.MQTTURI)
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		log.Log.Warning("outputs.ConfigureMQTT(): connection lost, reconnecting: " + err.Error())
	}

	return mqtt.NewClient(opts)
}

// MQTTPublisher publishes every report to <topic>/analysis and reports with
// movement to <topic>/motion as well.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
	qos    byte
}

func NewMQTTPublisher(client mqtt.Client, topic string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic}
}

func AnalysisTopic(topic string) string {
	return topic + "/analysis"
}

func MotionTopic(topic string) string {
	return topic + "/motion"
}

func (p *MQTTPublisher) Connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return ErrConnectTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connection failed: %w", err)
	}
	return nil
}

func (p *MQTTPublisher) Publish(report *motion.MotionReport) error {
	if !p.client.IsConnectionOpen() {
		return ErrNotConnected
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	topics := []string{AnalysisTopic(p.topic)}
	if report.HasMovement {
		topics = append(topics, MotionTopic(p.topic))
	}

	for _, topic := range topics {
		if err := p.send(topic, payload); err != nil {
			return err
		}
		log.Log.Debug("outputs.Publish(): report " + report.AnalysisID + " published to " + topic)
	}
	return nil
}

func (p *MQTTPublisher) send(topic string, payload []byte) error {
	token := p.client.Publish(topic, p.qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s failed: %w", topic, err)
	}
	return nil
}

// Close disconnects the client and stops any pending reconnection.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
	log.Log.Info("outputs.Close(): mqtt disconnected")
}
