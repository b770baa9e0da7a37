// Package remote receives playback commands over MQTT and queues them on a
// cadence scene.
//
// Messages are decoded off the frame goroutine and handed to
// Scene.Enqueue; they take effect during the next Scene.Update. A payload
// is a single command or a list of commands, as JSON or YAML:
//
//	{"id": "intro", "playState": "reverse"}
//	[{"id": "intro", "progress": 0.5}, {"id": "outro", "playState": "pause"}]
package remote

import (
	"fmt"
	"io"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/phanxgames/cadence"
)

// DefaultTopic is the topic subscribed to when Config.Topic is empty.
const DefaultTopic = "cadence/control"

// Enqueuer receives decoded commands. *cadence.Scene implements it.
type Enqueuer interface {
	Enqueue(cmd cadence.Command)
}

var _ Enqueuer = (*cadence.Scene)(nil)

// Config describes the broker connection.
type Config struct {
	Broker   string `mapstructure:"broker" yaml:"broker"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	Topic    string `mapstructure:"topic" yaml:"topic"`
	QoS      byte   `mapstructure:"qos" yaml:"qos"`
	// ClientID defaults to "cadence-" followed by a random UUID.
	ClientID    string        `mapstructure:"client_id" yaml:"clientID"`
	KeepAlive   time.Duration `mapstructure:"keep_alive" yaml:"keepAlive"`
	PingTimeout time.Duration `mapstructure:"ping_timeout" yaml:"pingTimeout"`
}

// Client subscribes to a control topic and forwards commands.
type Client struct {
	cfg    Config
	sink   Enqueuer
	client mqtt.Client

	// Warnings receives decode failures. Defaults to os.Stderr.
	Warnings io.Writer
}

// New prepares a client. Call Connect to reach the broker.
func New(cfg Config, sink Enqueuer) *Client {
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "cadence-" + uuid.NewString()
	}
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = 30 * time.Second
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 5 * time.Second
	}
	c := &Client{cfg: cfg, sink: sink, Warnings: os.Stderr}
	c.client = mqtt.NewClient(c.options())
	return c
}

// Config returns the effective configuration, defaults included.
func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) options() *mqtt.ClientOptions {
	return mqtt.NewClientOptions().
		AddBroker(c.cfg.Broker).
		SetClientID(c.cfg.ClientID).
		SetUsername(c.cfg.Username).
		SetPassword(c.cfg.Password).
		SetKeepAlive(c.cfg.KeepAlive).
		SetPingTimeout(c.cfg.PingTimeout).
		SetAutoReconnect(true).
		SetOnConnectHandler(c.handleOnConnect)
}

// Connect blocks until the broker accepts the connection. The topic is
// subscribed on every (re)connect.
func (c *Client) Connect() error {
	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("remote: connect %s: %w", c.cfg.Broker, token.Error())
	}
	return nil
}

// Close disconnects, waiting up to 250ms for in-flight work.
func (c *Client) Close() {
	c.client.Disconnect(250)
}

func (c *Client) handleOnConnect(client mqtt.Client) {
	if token := client.Subscribe(c.cfg.Topic, c.cfg.QoS, c.handleMessage); token.Wait() && token.Error() != nil {
		c.warnf("subscribe %s: %v", c.cfg.Topic, token.Error())
	}
}

func (c *Client) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	cmds, err := Decode(msg.Payload())
	if err != nil {
		c.warnf("message %d on %s: %v", msg.MessageID(), msg.Topic(), err)
		return
	}
	for _, cmd := range cmds {
		c.sink.Enqueue(cmd)
	}
}

func (c *Client) warnf(format string, args ...any) {
	if c.Warnings == nil {
		return
	}
	_, _ = fmt.Fprintf(c.Warnings, "[cadence/remote] warning: "+format+"\n", args...)
}
