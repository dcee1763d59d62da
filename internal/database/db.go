package database

import (
	"log"

	"luna27-backend/internal/config"
	"luna27-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Sucursal{},
		&models.Usuario{},
		&models.Cliente{},
		&models.Empleado{},
		&models.Servicio{},
		&models.Cita{},
		&models.ProductoInventario{},
		&models.TarjetaRegalo{},
		&models.Pago{},
		&models.Promocion{},
		&models.SolicitudVacaciones{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Error de AutoMigrate: %v", err)
	}

	log.Println("Conexión a la base de datos establecida. Migración completada.")
}
