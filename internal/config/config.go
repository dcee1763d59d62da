package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort           string
	DatabaseDSN        string
	JWTSecret          string
	CORSOrigins        string
	AppEnv             string // "development" | "production"
	IdentityURL        string // URL base del proveedor de identidad
	IdentityAnonKey    string // clave pública (login)
	IdentityServiceKey string // clave service-role (alta/baja de cuentas)
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:        getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=luna27 port=5432 sslmode=disable"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CORSOrigins:        getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		AppEnv:             getEnv("APP_ENV", "development"),
		IdentityURL:        getEnv("IDENTITY_URL", ""),
		IdentityAnonKey:    getEnv("IDENTITY_ANON_KEY", ""),
		IdentityServiceKey: getEnv("IDENTITY_SERVICE_KEY", ""),
	}

	// Controles de seguridad para producción
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] La variable de entorno JWT_SECRET no está definida. Es obligatoria.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres. Riesgo de seguridad.")
	}
	if cfg.IdentityURL == "" || cfg.IdentityServiceKey == "" {
		log.Fatal("[FATAL] IDENTITY_URL e IDENTITY_SERVICE_KEY son obligatorias para operar contra el proveedor de identidad.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=luna27 port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usa el valor por defecto, define tu propia conexión Postgres para producción.")
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usa el valor por defecto, define tu propio dominio para producción.")
	}

	return cfg
}

// IsProduction decide atributos sensibles (cookie Secure).
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
