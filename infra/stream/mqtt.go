// Package stream provides the MQTT implementation of the slot feed.
package stream

import (
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/fleetsim/core/sim"
	corestream "github.com/kilianp07/fleetsim/core/stream"
	"github.com/kilianp07/fleetsim/infra/logger"
)

var _ corestream.Publisher = (*MQTTPublisher)(nil)

// Config defines the connection parameters for the MQTT slot publisher.
type Config struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// MQTTPublisher publishes slot records as JSON to a single topic.
type MQTTPublisher struct {
	cli   pahoClient
	topic string
	qos   byte
	log   logger.Logger
}

// NewMQTTPublisher connects to the broker and returns a ready publisher.
func NewMQTTPublisher(cfg Config) (*MQTTPublisher, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("stream: broker is required")
	}
	if cfg.Topic == "" {
		cfg.Topic = "fleetsim/slots"
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "fleetsim-" + uuid.NewString()
	}

	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	log := logger.New("stream_mqtt")
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	log.Infof("connected to %s, publishing on %s", cfg.Broker, cfg.Topic)
	return &MQTTPublisher{cli: c, topic: cfg.Topic, qos: cfg.QoS, log: log}, nil
}

// PublishSlot marshals the record and publishes it without waiting for
// delivery, so a slow broker cannot stall the simulation.
func (p *MQTTPublisher) PublishSlot(rec sim.SlotRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	token := p.cli.Publish(p.topic, p.qos, false, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			p.log.Errorf("publish failed: %v", token.Error())
		}
	}()
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
