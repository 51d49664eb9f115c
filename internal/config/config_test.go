package config

import (
	"testing"
	"time"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, BackendExcel, cfg.Members.Backend)
	assert.Equal(t, 30*time.Second, cfg.Members.CacheTTL)
	assert.Equal(t, "Membres", cfg.Excel.Sheet)
	assert.Equal(t, []int{200, 201, 302, 303}, cfg.Remote.AcceptedStatus)
	assert.Equal(t, 15*time.Second, cfg.Remote.Timeout)
	assert.Contains(t, cfg.Admin.Users, "admin")
	assert.False(t, cfg.MQTT.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MEMBERS_BACKEND", "Remote")
	t.Setenv("MEMBERS_CACHE_TTL", "5m")
	t.Setenv("MEMBERS_REQUIRE_NEIGHBORHOOD", "true")
	t.Setenv("EXCEL_HEADER_OFFSET", "1")
	t.Setenv("REMOTE_FORM_FIELDS", "first_name=entry.1, phone = entry.3 ,bogus")
	t.Setenv("ADMIN_USERS", "awa:secret, broken ,:x")
	t.Setenv("MQTT_ENABLED", "true")
	t.Setenv("MQTT_TOPIC", "mbb/test")

	cfg := Load()

	assert.Equal(t, BackendRemote, cfg.Members.Backend)
	assert.Equal(t, MaxCacheTTL, cfg.Members.CacheTTL)
	assert.True(t, cfg.Members.RequireNeighborhood)
	assert.Equal(t, 1, cfg.Excel.HeaderOffset)
	require.Len(t, cfg.Remote.FormFields, 2)
	assert.Equal(t, "entry.3", cfg.Remote.FormFields[domain.FieldPhone])
	assert.Equal(t, map[string]string{"awa": "secret"}, cfg.Admin.Users)
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, "mbb/test", cfg.MQTT.Topic)
}

func TestClampTTL(t *testing.T) {
	assert.Equal(t, time.Duration(0), clampTTL(-time.Second))
	assert.Equal(t, 10*time.Second, clampTTL(10*time.Second))
	assert.Equal(t, MaxCacheTTL, clampTTL(2*time.Minute))
}
