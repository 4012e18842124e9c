package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: StoreDriverMemory},
			Invoice:  InvoiceConfig{NumberingMode: NumberingModeSequence},
			MQTT:     MQTTConfig{QoS: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"scan numbering", func(c *Config) { c.Invoice.NumberingMode = NumberingModeScan }, false},
		{"unknown store", func(c *Config) { c.Database.Driver = "mongo" }, true},
		{"unknown numbering", func(c *Config) { c.Invoice.NumberingMode = "random" }, true},
		{"qos out of range", func(c *Config) { c.MQTT.QoS = 3 }, true},
		{"negative body limit", func(c *Config) { c.Server.MaxBodyBytes = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "app", Password: "pw", DBName: "freight", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=freight sslmode=disable", db.DSN())
}
