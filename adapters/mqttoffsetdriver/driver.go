// Package mqttoffsetdriver implements calibration.OffsetDriver by
// publishing SetDeviceTransform requests to an MQTT broker, standing in
// for the out-of-scope synchronous request/response IPC channel to the
// external pose-offset driver process (spec.md §6). Grounded on
// relabs-tech-inertial_computer's internal/app/console_mqtt.go /
// imu_producer.go publish pattern.
package mqttoffsetdriver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/itohio/spacecalibrator/calibration"
)

// Driver publishes SetDeviceTransformRequest values as JSON to a single
// topic, QoS 1, blocking on the publish token to approximate the spec's
// synchronous SendBlocking call (spec.md §5).
type Driver struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
}

// Config configures the MQTT connection.
type Config struct {
	Broker   string // e.g. "tcp://localhost:1883"
	ClientID string
	Topic    string // e.g. "spacecalibrator/offset"
	Timeout  time.Duration
}

// New connects to the configured broker and returns a ready Driver.
func New(cfg Config) (*Driver, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Second
	}
	opts := mqtt.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.Timeout) {
		return nil, fmt.Errorf("mqttoffsetdriver: connect to %s timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqttoffsetdriver: connect: %w", err)
	}
	return &Driver{client: client, topic: cfg.Topic, timeout: cfg.Timeout}, nil
}

type wireRequest struct {
	DeviceID    int       `json:"device_id"`
	Enabled     bool      `json:"enabled"`
	Translation [3]float64 `json:"translation"`
	Rotation    [4]float64 `json:"rotation"` // w,x,y,z
	Scale       float64   `json:"scale"`
}

// SetDeviceTransform publishes req and blocks until the broker
// acknowledges delivery or the configured timeout elapses.
func (d *Driver) SetDeviceTransform(ctx context.Context, req calibration.SetDeviceTransformRequest) error {
	payload, err := json.Marshal(wireRequest{
		DeviceID:    req.DeviceID,
		Enabled:     req.Enabled,
		Translation: [3]float64{req.Translation[0], req.Translation[1], req.Translation[2]},
		Rotation:    [4]float64{req.Rotation.W, req.Rotation.X, req.Rotation.Y, req.Rotation.Z},
		Scale:       req.Scale,
	})
	if err != nil {
		return fmt.Errorf("mqttoffsetdriver: marshal request: %w", err)
	}

	token := d.client.Publish(d.topic, 1, false, payload)
	if !token.WaitTimeout(d.timeout) {
		return fmt.Errorf("mqttoffsetdriver: publish to %s timed out", d.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqttoffsetdriver: publish to %s: %w", d.topic, err)
	}
	return nil
}

// Close disconnects the underlying MQTT client.
func (d *Driver) Close() {
	d.client.Disconnect(250)
}
