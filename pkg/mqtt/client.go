package mqtt

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

type Config struct {
	Broker               string
	ClientID             string
	Username             string
	Password             string
	CleanSession         bool
	KeepAlive            int
	ConnectTimeout       int
	AutoReconnect        bool
	MaxReconnectInterval time.Duration
}

type Client struct {
	client mqtt.Client
	config *Config
	log    *zap.Logger
}

func NewClient(config *Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.Broker)
	opts.SetClientID(config.ClientID)
	opts.SetUsername(config.Username)
	opts.SetPassword(config.Password)
	opts.SetCleanSession(config.CleanSession)
	opts.SetKeepAlive(time.Duration(config.KeepAlive) * time.Second)
	opts.SetConnectTimeout(time.Duration(config.ConnectTimeout) * time.Second)
	opts.SetAutoReconnect(config.AutoReconnect)
	opts.SetMaxReconnectInterval(config.MaxReconnectInterval)

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Info("MQTT client connected", zap.String("broker", config.Broker))
	})

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Warn("MQTT connection lost", zap.Error(err))
	})

	opts.SetReconnectingHandler(func(c mqtt.Client, opts *mqtt.ClientOptions) {
		log.Info("Reconnecting to MQTT broker")
	})

	return &Client{
		client: mqtt.NewClient(opts),
		config: config,
		log:    log,
	}
}

// Connect establishes a connection to the MQTT broker
func (c *Client) Connect() error {
	token := c.client.Connect()
	token.Wait()

	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	return nil
}

// Publish publishes a message and waits up to timeout for the broker ack
func (c *Client) Publish(topic string, qos byte, retained bool, payload []byte, timeout time.Duration) error {
	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	return token.Error()
}

// Disconnect waits up to 250ms for in-flight work
func (c *Client) Disconnect() {
	c.client.Disconnect(250)
	c.log.Info("Disconnected from MQTT broker")
}

func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}
