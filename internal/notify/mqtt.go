// Package notify publishes spot change events over MQTT so clients can
// refresh without polling.
package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gmiller1004/workhaven-server/internal/models"
	log "github.com/sirupsen/logrus"
)

const defaultTopic = "workhaven/spots/changes"

// MQTTNotifier publishes change events to an MQTT broker.
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
}

// NewMQTTNotifier connects to the broker given by MQTT_BROKER. It returns an
// error when the variable is unset so callers can run without notifications.
func NewMQTTNotifier(clientID string) (*MQTTNotifier, error) {
	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		return nil, fmt.Errorf("MQTT_BROKER not set")
	}

	topic := os.Getenv("MQTT_TOPIC")
	if topic == "" {
		topic = defaultTopic
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	log.WithField("broker", broker).Info("Connected to MQTT broker")
	return &MQTTNotifier{client: client, topic: topic}, nil
}

// PublishChange publishes a spot change event. Delivery is at-least-once
// (QoS 1); the broker retains nothing.
func (n *MQTTNotifier) PublishChange(change models.SpotChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	token := n.client.Publish(n.topic, 1, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("timed out publishing change for spot %s", change.SpotID)
	}
	return token.Error()
}

// Close disconnects from the broker, allowing in-flight messages to finish.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
