// Package config loads the daemon configuration and holds the radio
// register values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Address is a 24-bit remote address. YAML accepts 0x184623 or "184623";
// both are read as hexadecimal.
type Address uint32

func (a *Address) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: remote id must be a scalar", value.Line)
	}
	s := strings.TrimPrefix(strings.ToLower(value.Value), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("line %d: invalid remote id %q: %v", value.Line, value.Value, err)
	}
	*a = Address(v)
	return nil
}

func (a Address) String() string {
	return fmt.Sprintf("0x%06x", uint32(a))
}

type Config struct {
	MQTT    MQTT    `yaml:"mqtt"`
	Radio   Radio   `yaml:"radio"`
	Storage Storage `yaml:"storage"`
	HTTP    HTTP    `yaml:"http"`
	// ResetRollingCodes stores every remote's default rolling code at
	// start-up, before any command is served.
	ResetRollingCodes bool     `yaml:"reset_rolling_codes"`
	Remotes           []Remote `yaml:"remotes"`
}

type MQTT struct {
	Broker   string `yaml:"broker"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// ClientID gets a random suffix when empty.
	ClientID    string `yaml:"client_id"`
	StatusTopic string `yaml:"status_topic"`
	AckTopic    string `yaml:"ack_topic"`
	// AdminTopic takes "p" to pair every remote. Empty disables it.
	AdminTopic string `yaml:"admin_topic"`
	QoS        byte   `yaml:"qos"`
}

type Radio struct {
	SPIChannel byte `yaml:"spi_channel"`
	SPISpeed   int  `yaml:"spi_speed"`
	// ResetPin is the BCM number of the pin wired to the RFM69 RESET.
	ResetPin int `yaml:"reset_pin"`
	// TxPin is the periph name of the pin wired to DIO2.
	TxPin        string `yaml:"tx_pin"`
	FrequencyKHz int64  `yaml:"frequency_khz"`
}

type Storage struct {
	Path string `yaml:"path"`
}

type HTTP struct {
	Listen string `yaml:"listen"`
}

type Remote struct {
	ID                 Address `yaml:"id"`
	Name               string  `yaml:"name"`
	Topic              string  `yaml:"topic"`
	DefaultRollingCode uint32  `yaml:"default_rolling_code"`
	StorageKey         string  `yaml:"storage_key"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	// Numeric settings whose zero value is meaningful, QoS 0 and BCM pin
	// 0, get their defaults before decoding so only absent keys keep them.
	c := Config{
		MQTT:  MQTT{QoS: 1},
		Radio: Radio{ResetPin: 24},
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.MQTT.Broker == "" {
		c.MQTT.Broker = "tcp://localhost:1883"
	}
	if c.MQTT.StatusTopic == "" {
		c.MQTT.StatusTopic = "smartHome/somfy-remote/status"
	}
	if c.MQTT.AckTopic == "" {
		c.MQTT.AckTopic = "smartHome/somfy-remote/ack"
	}
	if c.Radio.SPISpeed == 0 {
		c.Radio.SPISpeed = 1000000
	}
	if c.Radio.TxPin == "" {
		c.Radio.TxPin = "25"
	}
	if c.Radio.FrequencyKHz == 0 {
		c.Radio.FrequencyKHz = FREQUENCY_KHZ
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "rolling_codes.db"
	}
	if c.HTTP.Listen == "" {
		c.HTTP.Listen = ":8080"
	}
	for i := range c.Remotes {
		r := &c.Remotes[i]
		if r.StorageKey == "" {
			r.StorageKey = fmt.Sprintf("%06x", uint32(r.ID))
		}
		if r.Name == "" {
			r.Name = r.Topic
		}
	}
}

func (c *Config) Validate() error {
	if len(c.Remotes) == 0 {
		return fmt.Errorf("no remotes configured")
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("invalid MQTT QoS: %d", c.MQTT.QoS)
	}
	ids := make(map[Address]bool)
	topics := make(map[string]bool)
	keys := make(map[string]bool)
	for _, r := range c.Remotes {
		if r.ID > 0xffffff {
			return fmt.Errorf("remote %s: id %s does not fit in 24 bits", r.Name, r.ID)
		}
		if r.Topic == "" {
			return fmt.Errorf("remote %s: no topic", r.ID)
		}
		if r.Topic == c.MQTT.AdminTopic {
			return fmt.Errorf("remote %s: topic %s is the admin topic", r.ID, r.Topic)
		}
		if ids[r.ID] {
			return fmt.Errorf("duplicate remote id %s", r.ID)
		}
		if topics[r.Topic] {
			return fmt.Errorf("duplicate remote topic %s", r.Topic)
		}
		if keys[r.StorageKey] {
			return fmt.Errorf("duplicate storage key %q", r.StorageKey)
		}
		ids[r.ID] = true
		topics[r.Topic] = true
		keys[r.StorageKey] = true
	}
	return nil
}
