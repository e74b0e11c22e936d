package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Backends de persistencia soportados.
const (
	BackendXLSX   = "xlsx"
	BackendGSheet = "gsheet"
	BackendSQLite = "sqlite"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	JWT     JWTConfig
	Admin   AdminConfig
	Alerts  AlertConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
	// MasterConflictPolicy: "keep" conserva el maestro del primer lote ante
	// entradas con datos distintos; "overwrite" lo actualiza.
	MasterConflictPolicy string
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

// StorageConfig selección y parámetros del backend de persistencia.
type StorageConfig struct {
	Backend         string // xlsx | gsheet | sqlite
	XLSXDir         string // directorio de los libros .xlsx
	SpreadsheetID   string // ID de la hoja de Google
	CredentialsFile string // credenciales de cuenta de servicio
	SQLitePath      string // ruta del archivo .db
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AdminConfig credenciales del operador único.
type AdminConfig struct {
	User         string
	PasswordHash string // hash bcrypt
}

// AlertConfig umbrales por defecto (en días) del reporte de vencimientos.
// El cliente puede sobreescribirlos por petición.
type AlertConfig struct {
	CriticalDays   int
	WarningDays    int
	PreventiveDays int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:                  getString(v, "APP_ENV", "development"),
			Name:                 getString(v, "APP_NAME", "inventario-bym"),
			MasterConflictPolicy: getString(v, "MASTER_CONFLICT_POLICY", "keep"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Backend:         getString(v, "STORAGE_BACKEND", BackendXLSX),
			XLSXDir:         getString(v, "XLSX_DIR", "."),
			SpreadsheetID:   getString(v, "GSHEET_SPREADSHEET_ID", ""),
			CredentialsFile: getString(v, "GSHEET_CREDENTIALS_FILE", ""),
			SQLitePath:      getString(v, "SQLITE_PATH", "inventario.db"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "inventario-bym"),
		},
		Admin: AdminConfig{
			User:         getString(v, "ADMIN_USER", "admin"),
			PasswordHash: getString(v, "ADMIN_PASSWORD_HASH", ""),
		},
		Alerts: AlertConfig{
			CriticalDays:   getInt(v, "ALERT_CRITICAL_DAYS", 3),
			WarningDays:    getInt(v, "ALERT_WARNING_DAYS", 7),
			PreventiveDays: getInt(v, "ALERT_PREVENTIVE_DAYS", 12),
		},
	}

	switch cfg.Storage.Backend {
	case BackendXLSX, BackendSQLite:
	case BackendGSheet:
		if cfg.Storage.SpreadsheetID == "" {
			return nil, fmt.Errorf("config: GSHEET_SPREADSHEET_ID es obligatorio con STORAGE_BACKEND=gsheet")
		}
	default:
		return nil, fmt.Errorf("config: STORAGE_BACKEND desconocido: %q", cfg.Storage.Backend)
	}

	return cfg, nil
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
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
