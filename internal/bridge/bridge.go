// Package bridge owns the MQTT broker connection. It parses inbound device
// status into the telemetry cache and publishes outbound control commands.
package bridge

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"smartlight/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	connectTimeout    = 10 * time.Second
	keepAliveInterval = 60 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 250 // milliseconds
)

// Config holds the broker address and topic layout.
type Config struct {
	Broker       string
	ClientID     string
	ControlTopic string
	StatusTopic  string
	Wildcard     string
}

// SnapshotSink receives a telemetry snapshot whenever a full status frame is
// parsed. Delivery is best effort; the sink must not block.
type SnapshotSink func(models.TelemetrySnapshot)

// Bridge owns the MQTT session and the telemetry cache. All methods are safe
// for concurrent use; the mutex ensures at most one connect attempt runs at
// a time.
type Bridge struct {
	mu     sync.Mutex
	client mqtt.Client

	cfg   Config
	cache *TelemetryCache
	sink  SnapshotSink
	log   *zap.SugaredLogger
	now   func() time.Time
}

// New creates a bridge. Call Connect to establish the session.
func New(cfg Config, sink SnapshotSink, log *zap.SugaredLogger) *Bridge {
	return &Bridge{
		cfg:   cfg,
		cache: NewTelemetryCache(),
		sink:  sink,
		log:   log,
		now:   time.Now,
	}
}

// Connect establishes the MQTT session. It is safe to call when already
// connected (no-op) or after a lost connection (fresh attempt). A failed
// connect is logged and leaves the bridge disconnected; it is never fatal.
func (b *Bridge) Connect() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connectLocked()
}

func (b *Bridge) connectLocked() {
	if b.client != nil && b.client.IsConnected() {
		return
	}

	if b.client == nil {
		// Unique client id suffix avoids broker session collisions across
		// restarts.
		clientID := fmt.Sprintf("%s_%s", b.cfg.ClientID, uuid.NewString()[:8])
		opts := mqtt.NewClientOptions().
			AddBroker(b.cfg.Broker).
			SetClientID(clientID).
			SetCleanSession(true).
			SetAutoReconnect(true).
			SetConnectTimeout(connectTimeout).
			SetKeepAlive(keepAliveInterval).
			SetDefaultPublishHandler(func(_ mqtt.Client, msg mqtt.Message) {
				b.handleMessage(msg.Topic(), string(msg.Payload()))
			}).
			SetOnConnectHandler(b.onConnect).
			SetConnectionLostHandler(func(_ mqtt.Client, err error) {
				b.log.Warnw("mqtt connection lost", "error", err)
			})
		b.client = mqtt.NewClient(opts)
	}

	b.log.Infow("connecting to mqtt broker", "broker", b.cfg.Broker)
	token := b.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		b.log.Errorw("mqtt connect timed out", "broker", b.cfg.Broker)
		return
	}
	if err := token.Error(); err != nil {
		b.log.Errorw("failed to connect to mqtt broker", "broker", b.cfg.Broker, "error", err)
		return
	}
	b.log.Infow("connected to mqtt broker", "broker", b.cfg.Broker)
}

// onConnect runs on the initial connect and on every auto-reconnect, so the
// subscriptions survive connection loss.
func (b *Bridge) onConnect(client mqtt.Client) {
	for _, topic := range []string{b.cfg.StatusTopic, b.cfg.Wildcard} {
		if token := client.Subscribe(topic, 1, nil); token.Wait() && token.Error() != nil {
			b.log.Errorw("mqtt subscribe failed", "topic", topic, "error", token.Error())
			continue
		}
		b.log.Infow("subscribed to mqtt topic", "topic", topic)
	}
}

// handleMessage dispatches one inbound message. Status topics carry loosely
// structured frames; the legacy /current and /power channels carry a bare
// float.
func (b *Bridge) handleMessage(topic, payload string) {
	b.log.Debugw("mqtt message received", "topic", topic, "payload", payload)

	switch {
	case topic == b.cfg.StatusTopic || strings.Contains(topic, "status"):
		b.handleStatus(payload)
	case strings.HasSuffix(topic, "/current"):
		value, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
		if err != nil {
			b.log.Warnw("invalid current payload", "payload", payload, "error", err)
			return
		}
		b.cache.SetCurrent(value)
	case strings.HasSuffix(topic, "/power"):
		value, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
		if err != nil {
			b.log.Warnw("invalid power payload", "payload", payload, "error", err)
			return
		}
		b.cache.SetPower(value)
	}
}

func (b *Bridge) handleStatus(payload string) {
	frame, fieldErrs, ok := decodeStatusFrame([]byte(payload))
	if !ok {
		// Not a structured frame; the firmware also sends bare on/off.
		trimmed := strings.TrimSpace(payload)
		if trimmed == "on" || trimmed == "off" {
			b.cache.SetStatus(trimmed)
		}
		return
	}

	for _, fe := range fieldErrs {
		b.log.Warnw("could not parse status field, keeping cached value", "field", fe.Field, "error", fe.Err)
	}

	if frame.State != nil {
		b.cache.SetStatus(*frame.State)
	}
	if frame.Current != nil {
		b.cache.SetCurrent(*frame.Current)
	}
	if frame.Power != nil {
		b.cache.SetPower(*frame.Power)
	}

	// A frame carrying a state field is a full status report; persist one
	// snapshot. Physical switch changes arrive the same way and persist
	// immediately too.
	if frame.HasState {
		if frame.PhysicalSwitch {
			b.log.Infow("physical switch state change detected", "status", b.cache.Status())
		}
		if b.sink != nil {
			b.sink(b.cache.Snapshot(b.now()))
		}
	}
}

// Publish sends a payload with QoS 1, non-retained. When disconnected it
// attempts one reconnect first; if that fails the message is logged and
// dropped. Publish never returns an error to the caller.
func (b *Bridge) Publish(topic, payload string) {
	b.mu.Lock()
	if b.client == nil || !b.client.IsConnected() {
		b.log.Warn("mqtt not connected, attempting to reconnect")
		b.connectLocked()
	}
	client := b.client
	b.mu.Unlock()

	if client == nil || !client.IsConnected() {
		b.log.Errorw("mqtt client not connected, dropping message", "topic", topic, "payload", payload)
		return
	}

	token := client.Publish(topic, 1, false, []byte(payload))
	if !token.WaitTimeout(publishTimeout) {
		b.log.Errorw("mqtt publish timed out", "topic", topic)
		return
	}
	if err := token.Error(); err != nil {
		b.log.Errorw("failed to publish mqtt message", "topic", topic, "error", err)
		return
	}
	b.log.Infow("published mqtt message", "topic", topic, "payload", payload)

	// Local prediction only; the device's real status still arrives
	// asynchronously on the status topic.
	switch strings.ToLower(payload) {
	case "1", "on":
		b.cache.SetStatus("on")
	case "0", "off":
		b.cache.SetStatus("off")
	}
}

// PublishControl sends a payload on the canonical control topic.
func (b *Bridge) PublishControl(payload string) {
	b.Publish(b.cfg.ControlTopic, payload)
}

// IsConnected reports the current connection state.
func (b *Bridge) IsConnected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.client != nil && b.client.IsConnected()
}

// LastSnapshot returns the cached telemetry stamped with the current time.
func (b *Bridge) LastSnapshot() models.TelemetrySnapshot {
	return b.cache.Snapshot(b.now())
}

// Close disconnects gracefully, allowing in-flight messages to drain.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil && b.client.IsConnected() {
		b.client.Disconnect(disconnectQuiesce)
		b.log.Info("disconnected from mqtt broker")
	}
}
