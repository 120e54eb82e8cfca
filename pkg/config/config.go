package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Cron     CronConfig
	Email    EmailConfig
	Push     PushConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Holidays HolidaysConfig
	Sweep    SweepConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	BaseURL  string // URL pública del frontend, para enlaces en correos y push
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CronConfig secreto compartido con el disparador externo del barrido.
type CronConfig struct {
	Secret string
}

// EmailConfig proveedor de correo (Resend). Sin API key el envío queda deshabilitado.
type EmailConfig struct {
	ResendAPIKey string
	From         string
}

// PushConfig claves VAPID. Si faltan o son inválidas, los envíos push se omiten.
type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subject         string // mailto:contacto@empresa.cl
}

// RedisConfig conexión a Redis (lock del barrido y caché de feriados). Addr vacío = deshabilitado.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig object storage S3-compatible (MinIO) para documentos de pedidos.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// HolidaysConfig API pública de feriados.
type HolidaysConfig struct {
	BaseURL        string
	DefaultCountry string
	CacheTTLHours  int
}

// SweepConfig parámetros del barrido de vencimientos.
type SweepConfig struct {
	DefaultDaysBefore int
	LockTTLSeconds    int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, RESEND_API_KEY, VAPID_PUBLIC_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v), nil
}

// FromViper construye la configuración desde una instancia de Viper ya cargada (útil en tests).
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "pedidos-api"),
			BaseURL:  strings.TrimRight(getString(v, "APP_BASE_URL", "http://localhost:3000"), "/"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "pedidos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "pedidos-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Cron: CronConfig{
			Secret: getString(v, "CRON_SECRET", ""),
		},
		Email: EmailConfig{
			ResendAPIKey: getString(v, "RESEND_API_KEY", ""),
			From:         getString(v, "EMAIL_FROM", "Pedidos <notificaciones@example.com>"),
		},
		Push: PushConfig{
			VAPIDPublicKey:  getString(v, "VAPID_PUBLIC_KEY", ""),
			VAPIDPrivateKey: getString(v, "VAPID_PRIVATE_KEY", ""),
			Subject:         getString(v, "VAPID_SUBJECT", "mailto:notificaciones@example.com"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:  getString(v, "STORAGE_ENDPOINT", ""),
			AccessKey: getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey: getString(v, "STORAGE_SECRET_KEY", ""),
			Bucket:    getString(v, "STORAGE_BUCKET", "pedidos-documentos"),
			UseSSL:    getBool(v, "STORAGE_USE_SSL", false),
		},
		Holidays: HolidaysConfig{
			BaseURL:        strings.TrimRight(getString(v, "HOLIDAYS_API_URL", "https://date.nager.at/api/v3"), "/"),
			DefaultCountry: strings.ToUpper(getString(v, "HOLIDAYS_COUNTRY", "CL")),
			CacheTTLHours:  getInt(v, "HOLIDAYS_CACHE_TTL_HOURS", 24),
		},
		Sweep: SweepConfig{
			DefaultDaysBefore: getInt(v, "SWEEP_DEFAULT_DAYS_BEFORE", 3),
			LockTTLSeconds:    getInt(v, "SWEEP_LOCK_TTL_SECONDS", 300),
		},
	}
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
