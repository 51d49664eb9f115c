package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	commoncfg "github.com/Laye1997/malika-bi-nu-begg-d/common/config"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"

	"github.com/joho/godotenv"
)

// Backend names accepted by MEMBERS_BACKEND.
const (
	BackendMemory   = "memory"
	BackendExcel    = "excel"
	BackendRemote   = "remote"
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Reads may be served from cache for at most this long.
const MaxCacheTTL = 60 * time.Second

// Config mbb-members configuration.
type Config struct {
	HTTP struct {
		Addr string
	}
	Log struct {
		Level  string
		Format string
	}
	Members MembersConfig

	RedisEnabled bool
	Redis        commoncfg.RedisConfig
	Database     commoncfg.DatabaseConfig

	Excel  ExcelConfig
	Remote RemoteConfig
	Sheets SheetsConfig
	SQLite struct {
		Path string
	}

	MQTT  MQTTConfig
	Admin AdminConfig
}

// MembersConfig selects the backing source and store behaviour.
type MembersConfig struct {
	Backend             string
	RequireNeighborhood bool
	CacheTTL            time.Duration
}

// ExcelConfig local .xlsx file.
type ExcelConfig struct {
	Path            string
	Sheet           string
	HeaderOffset    int // caption rows above the header row
	CreateIfMissing bool
}

// RemoteConfig published CSV export (reads) + web form endpoint (writes).
type RemoteConfig struct {
	CSVURL         string
	FormURL        string
	HeaderOffset   int
	FormFields     map[domain.Field]string // field -> form input name
	AcceptedStatus []int
	Timeout        time.Duration
}

// SheetsConfig spreadsheet API with a service-account key file.
type SheetsConfig struct {
	SpreadsheetID   string
	Sheet           string
	CredentialsFile string
	HeaderOffset    int
	Timeout         time.Duration
}

// MQTTConfig registration event publishing (disabled by default).
type MQTTConfig struct {
	Enabled bool
	commoncfg.MQTTConfig
	Topic string
}

// AdminConfig static admin credential table and session lifetime.
type AdminConfig struct {
	Users      map[string]string // username -> password
	SessionTTL time.Duration
}

func Load() *Config {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Members.Backend = strings.ToLower(getEnv("MEMBERS_BACKEND", BackendExcel))
	cfg.Members.RequireNeighborhood = parseBool(getEnv("MEMBERS_REQUIRE_NEIGHBORHOOD", "false"), false)
	cfg.Members.CacheTTL = clampTTL(parseDuration(getEnv("MEMBERS_CACHE_TTL", "30s"), 30*time.Second))

	cfg.RedisEnabled = parseBool(getEnv("REDIS_ENABLED", "false"), false)
	cfg.Redis = commoncfg.RedisConfig{Addr: "localhost:6379"}
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.Database = commoncfg.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		Database: "mbb",
		SSLMode:  "disable",
	}
	cfg.Database.LoadFromEnv("DB")

	cfg.Excel.Path = getEnv("EXCEL_PATH", "data/membres_mbb.xlsx")
	cfg.Excel.Sheet = getEnv("EXCEL_SHEET", "Membres")
	cfg.Excel.HeaderOffset = parseInt(getEnv("EXCEL_HEADER_OFFSET", "0"), 0)
	cfg.Excel.CreateIfMissing = parseBool(getEnv("EXCEL_CREATE_IF_MISSING", "true"), true)

	cfg.Remote.CSVURL = getEnv("REMOTE_CSV_URL", "")
	cfg.Remote.FormURL = getEnv("REMOTE_FORM_URL", "")
	cfg.Remote.HeaderOffset = parseInt(getEnv("REMOTE_HEADER_OFFSET", "0"), 0)
	cfg.Remote.FormFields = parseFormFields(getEnv("REMOTE_FORM_FIELDS", ""))
	cfg.Remote.AcceptedStatus = parseIntList(getEnv("REMOTE_FORM_ACCEPTED_STATUS", "200,201,302,303"))
	cfg.Remote.Timeout = parseDuration(getEnv("REMOTE_TIMEOUT", "15s"), 15*time.Second)

	cfg.Sheets.SpreadsheetID = getEnv("SHEETS_SPREADSHEET_ID", "")
	cfg.Sheets.Sheet = getEnv("SHEETS_SHEET", "Membres")
	cfg.Sheets.CredentialsFile = getEnv("SHEETS_CREDENTIALS_FILE", "credentials.json")
	cfg.Sheets.HeaderOffset = parseInt(getEnv("SHEETS_HEADER_OFFSET", "0"), 0)
	cfg.Sheets.Timeout = parseDuration(getEnv("SHEETS_TIMEOUT", "15s"), 15*time.Second)

	cfg.SQLite.Path = getEnv("SQLITE_PATH", "data/members.db")

	cfg.MQTT.Enabled = parseBool(getEnv("MQTT_ENABLED", "false"), false)
	cfg.MQTT.Broker = "tcp://localhost:1883"
	cfg.MQTT.ClientID = "mbb-members"
	cfg.MQTT.QoS = 1
	cfg.MQTT.LoadFromEnv("MQTT")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "mbb/members/registered")

	cfg.Admin.Users = parseUsers(getEnv("ADMIN_USERS", "admin:ChangeMe123!,president:ChangeMe123!"))
	cfg.Admin.SessionTTL = parseDuration(getEnv("ADMIN_SESSION_TTL", "12h"), 12*time.Hour)

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}

func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return d
}

func clampTTL(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > MaxCacheTTL {
		return MaxCacheTTL
	}
	return d
}

func parseIntList(s string) []int {
	out := []int{}
	for _, part := range strings.Split(s, ",") {
		if i, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, i)
		}
	}
	return out
}

// parseUsers reads "user:pass,user2:pass2".
func parseUsers(s string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		user, pass, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || user == "" || pass == "" {
			continue
		}
		out[user] = pass
	}
	return out
}

// parseFormFields reads "first_name=entry.1001,phone=entry.1003".
func parseFormFields(s string) map[domain.Field]string {
	out := map[domain.Field]string{}
	for _, pair := range strings.Split(s, ",") {
		field, name, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || field == "" || name == "" {
			continue
		}
		out[domain.Field(strings.TrimSpace(field))] = strings.TrimSpace(name)
	}
	return out
}
