package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "mbb")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	c := DatabaseConfig{Host: "localhost", Port: 5432, MaxConns: 4, SSLMode: "disable"}
	c.LoadFromEnv("DB")

	assert.Equal(t, "db.internal", c.Host)
	assert.Equal(t, 6543, c.Port)
	assert.Equal(t, "mbb", c.Database)
	assert.Equal(t, 4, c.MaxConns)
	assert.Contains(t, c.GetDSN(), "host=db.internal port=6543")
	assert.Contains(t, c.GetDSN(), "sslmode=disable")
}

func TestMQTTConfig_LoadFromEnv_RejectsInvalidQoS(t *testing.T) {
	t.Setenv("MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("MQTT_QOS", "7")

	c := MQTTConfig{QoS: 1}
	c.LoadFromEnv("MQTT")

	assert.Equal(t, "tcp://broker:1883", c.Broker)
	assert.Equal(t, byte(1), c.QoS)
}

func TestRedisConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")

	var c RedisConfig
	c.LoadFromEnv("REDIS")
	assert.Equal(t, "cache:6379", c.Addr)
	assert.Equal(t, 3, c.DB)
}
