// Package broker connects the dispatcher to an MQTT broker.
package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dchest/uniuri"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/hatstand/somfy/config"
	"github.com/hatstand/somfy/remote"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	Online  = "online"
	Offline = "offline"

	publishTimeout = 5 * time.Second
	// Window in which a redelivered message id counts as already handled.
	duplicateWindow = 30 * time.Second
	queueLength     = 64
)

var ErrTimeout = errors.New("mqtt operation timed out")

// Handler is implemented by *remote.Dispatcher.
type Handler interface {
	Handle(topic string, payload []byte) (remote.Outcome, error)
	HandleAdmin(payload []byte) error
}

type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type Client struct {
	mq      mqtt.Client
	pub     publisher
	config  config.MQTT
	topics  []string
	handler Handler
	seen    *cache.Cache
	queue   chan mqtt.Message
	logger  *zap.Logger
}

// NewClient prepares a client that subscribes to topics and hands every
// message to handler. Nothing is sent until Connect.
func NewClient(c config.MQTT, topics []string, handler Handler, logger *zap.Logger) *Client {
	cl := newClient(c, topics, handler, logger)

	clientID := c.ClientID
	if clientID == "" {
		clientID = "somfy-remote-" + uniuri.NewLen(6)
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(c.Broker)
	opts.SetClientID(clientID)
	if c.Username != "" {
		opts.SetUsername(c.Username)
	}
	if c.Password != "" {
		opts.SetPassword(c.Password)
	}
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetOrderMatters(true)
	opts.SetBinaryWill(c.StatusTopic, []byte(Offline), 1, true)
	opts.SetOnConnectHandler(cl.onConnect)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("Lost connection to MQTT broker", zap.Error(err))
	})
	opts.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		logger.Info("Reconnecting to MQTT broker")
	})

	cl.mq = mqtt.NewClient(opts)
	cl.pub = cl.mq
	cl.logger = cl.logger.With(zap.String("client_id", clientID))
	return cl
}

func newClient(c config.MQTT, topics []string, handler Handler, logger *zap.Logger) *Client {
	return &Client{
		config:  c,
		topics:  topics,
		handler: handler,
		seen:    cache.New(duplicateWindow, 2*duplicateWindow),
		queue:   make(chan mqtt.Message, queueLength),
		logger:  logger.With(zap.String("broker", c.Broker)),
	}
}

// Connect starts the connection. paho keeps retrying in the background,
// so a broker that is down is only logged.
func (c *Client) Connect() error {
	t := c.mq.Connect()
	if !t.WaitTimeout(publishTimeout) {
		c.logger.Warn("MQTT broker not reachable yet, retrying in the background")
		return nil
	}
	if err := t.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker %s: %w", c.config.Broker, err)
	}
	return nil
}

// onConnect runs on every (re)connection. The session is clean, so the
// subscriptions have to be made again each time.
func (c *Client) onConnect(mq mqtt.Client) {
	c.logger.Info("Connected to MQTT broker")

	filters := make(map[string]byte, len(c.topics)+1)
	for _, t := range c.topics {
		filters[t] = c.config.QoS
	}
	if c.config.AdminTopic != "" {
		filters[c.config.AdminTopic] = c.config.QoS
	}
	t := mq.SubscribeMultiple(filters, c.deliver)
	if !t.WaitTimeout(publishTimeout) {
		c.logger.Error("Timed out subscribing to command topics")
	} else if err := t.Error(); err != nil {
		c.logger.Error("Failed to subscribe to command topics", zap.Error(err))
	} else {
		c.logger.Info("Subscribed", zap.Strings("topics", c.topics), zap.String("admin_topic", c.config.AdminTopic))
	}

	if err := c.publish(c.config.StatusTopic, true, Online); err != nil {
		c.logger.Error("Failed to publish presence", zap.Error(err))
	}
}

// deliver queues a message for Run. It is called from paho's router, which
// must never block: a stalled router also stalls the acks for our own
// publishes. Messages arriving while the queue is full are dropped.
func (c *Client) deliver(_ mqtt.Client, msg mqtt.Message) {
	if c.duplicate(msg) {
		c.logger.Info("Dropped redelivered message",
			zap.String("topic", msg.Topic()),
			zap.Uint16("message_id", msg.MessageID()))
		return
	}
	select {
	case c.queue <- msg:
	default:
		c.logger.Error("Command queue full, dropped message",
			zap.String("topic", msg.Topic()),
			zap.ByteString("payload", msg.Payload()))
	}
}

// Run handles queued messages in arrival order until ctx is done.
func (c *Client) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-c.queue:
			c.process(msg)
		}
	}
}

func (c *Client) process(msg mqtt.Message) {
	if c.config.AdminTopic != "" && msg.Topic() == c.config.AdminTopic {
		if err := c.handler.HandleAdmin(msg.Payload()); err != nil {
			c.logger.Warn("Admin command failed", zap.ByteString("payload", msg.Payload()), zap.Error(err))
		}
		return
	}
	// The dispatcher logs and counts the outcome.
	c.handler.Handle(msg.Topic(), msg.Payload())
}

// duplicate reports whether msg is a redelivery of a message handled in the
// last duplicateWindow. Only QoS 1 and 2 messages carry an id.
func (c *Client) duplicate(msg mqtt.Message) bool {
	if msg.Qos() == 0 {
		return false
	}
	key := fmt.Sprintf("%s#%d", msg.Topic(), msg.MessageID())
	if msg.Duplicate() {
		if _, found := c.seen.Get(key); found {
			return true
		}
	}
	c.seen.Set(key, struct{}{}, cache.DefaultExpiration)
	return false
}

// Acknowledge publishes the ack for an accepted command.
func (c *Client) Acknowledge(a remote.Ack) error {
	return c.publish(c.config.AckTopic, false, a.String())
}

func (c *Client) publish(topic string, retained bool, payload string) error {
	t := c.pub.Publish(topic, c.config.QoS, retained, payload)
	if !t.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: publishing to %s", ErrTimeout, topic)
	}
	if err := t.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Close marks the bridge offline and disconnects.
func (c *Client) Close() {
	if c.mq.IsConnectionOpen() {
		if err := c.publish(c.config.StatusTopic, true, Offline); err != nil {
			c.logger.Warn("Failed to publish offline status", zap.Error(err))
		}
	}
	c.mq.Disconnect(250)
	c.logger.Info("Disconnected from MQTT broker")
}
