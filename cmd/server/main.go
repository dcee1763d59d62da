package main

import (
	"log"
	"strings"

	"luna27-backend/internal/audit"
	"luna27-backend/internal/auth"
	"luna27-backend/internal/citas"
	"luna27-backend/internal/clientes"
	"luna27-backend/internal/config"
	"luna27-backend/internal/database"
	"luna27-backend/internal/empleados"
	"luna27-backend/internal/identity"
	"luna27-backend/internal/inventario"
	"luna27-backend/internal/models"
	"luna27-backend/internal/pagos"
	"luna27-backend/internal/promociones"
	"luna27-backend/internal/servicios"
	"luna27-backend/internal/sucursales"
	"luna27-backend/internal/tarjetas"
	"luna27-backend/internal/usuarios"
	"luna27-backend/internal/vacaciones"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	proveedor := identity.NewClient(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	// CORS: orígenes separados por coma en la variable de entorno
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true, // la sesión viaja en cookie
	}))

	api := app.Group("/api")

	// Auth pública
	api.Post("/auth/login", auth.LoginHandler(cfg, proveedor))
	api.Post("/auth/logout", auth.LogoutHandler(cfg))
	api.Get("/auth/me", auth.MeHandler(cfg))

	// Todo lo demás exige sesión. Los prefijos de usuario y catálogo se
	// comparten entre roles, así que la exigencia de rol va por ruta.
	protected := api.Group("", auth.SessionMiddleware(cfg))
	soloAdmin := auth.RequireRole(models.RolAdmin)
	managerOSuperior := auth.RequireRole(models.RolManager)

	// Solo admin: cuentas y sucursales
	protected.Get("/usuarios", soloAdmin, usuarios.ListUsuariosHandler())
	protected.Post("/usuarios", soloAdmin, usuarios.CreateUsuarioHandler(proveedor))
	protected.Put("/usuarios/:id", soloAdmin, usuarios.UpdateUsuarioHandler())
	protected.Delete("/usuarios/:id", soloAdmin, usuarios.DeactivateUsuarioHandler())

	protected.Post("/sucursales", soloAdmin, sucursales.CreateSucursalHandler())
	protected.Put("/sucursales/:id", soloAdmin, sucursales.UpdateSucursalHandler())
	protected.Delete("/sucursales/:id", soloAdmin, sucursales.DeleteSucursalHandler())

	protected.Get("/audit-logs", soloAdmin, audit.ListAuditLogsHandler())

	// Manager o superior: catálogo, plantilla y promociones
	protected.Post("/empleados", managerOSuperior, empleados.CreateEmpleadoHandler())
	protected.Put("/empleados/:id", managerOSuperior, empleados.UpdateEmpleadoHandler())
	protected.Delete("/empleados/:id", managerOSuperior, empleados.DeleteEmpleadoHandler())

	protected.Post("/servicios", managerOSuperior, servicios.CreateServicioHandler())
	protected.Put("/servicios/:id", managerOSuperior, servicios.UpdateServicioHandler())
	protected.Delete("/servicios/:id", managerOSuperior, servicios.DeleteServicioHandler())

	protected.Post("/inventario", managerOSuperior, inventario.CreateProductoHandler())
	protected.Put("/inventario/:id", managerOSuperior, inventario.UpdateProductoHandler())
	protected.Delete("/inventario/:id", managerOSuperior, inventario.DeleteProductoHandler())
	protected.Post("/inventario/importar", managerOSuperior, inventario.ImportarProductosHandler())

	protected.Post("/promociones", managerOSuperior, promociones.CreatePromocionHandler())
	protected.Put("/promociones/:id", managerOSuperior, promociones.UpdatePromocionHandler())
	protected.Delete("/promociones/:id", managerOSuperior, promociones.DeletePromocionHandler())

	protected.Post("/pagos/:id/anular", managerOSuperior, pagos.AnularPagoHandler())
	protected.Post("/tarjetas/:codigo/cancelar", managerOSuperior, tarjetas.CancelarTarjetaHandler())
	protected.Post("/vacaciones/:id/resolver", managerOSuperior, vacaciones.ResolverSolicitudHandler())

	// Cualquier rol autenticado
	protected.Get("/sucursales", sucursales.ListSucursalesHandler())
	protected.Get("/sucursales/:id", sucursales.GetSucursalHandler())

	protected.Post("/clientes", clientes.CreateClienteHandler())
	protected.Get("/clientes", clientes.ListClientesHandler())
	protected.Get("/clientes/:id", clientes.GetClienteHandler())
	protected.Put("/clientes/:id", clientes.UpdateClienteHandler())
	protected.Delete("/clientes/:id", clientes.DeleteClienteHandler())

	protected.Get("/empleados", empleados.ListEmpleadosHandler())
	protected.Get("/empleados/:id", empleados.GetEmpleadoHandler())

	protected.Get("/servicios", servicios.ListServiciosHandler())

	protected.Post("/citas", citas.CreateCitaHandler())
	protected.Get("/citas", citas.ListCitasHandler())
	protected.Get("/citas/:id", citas.GetCitaHandler())
	protected.Put("/citas/:id", citas.UpdateCitaHandler())
	protected.Post("/citas/:id/estado", citas.TransicionCitaHandler())
	protected.Delete("/citas/:id", citas.DeleteCitaHandler())

	protected.Get("/inventario", inventario.ListProductosHandler())
	protected.Post("/inventario/:id/ajuste", inventario.AjustarStockHandler())

	protected.Post("/pagos", pagos.CreatePagoHandler())
	protected.Get("/pagos", pagos.ListPagosHandler())

	protected.Post("/tarjetas", tarjetas.CreateTarjetaHandler())
	protected.Get("/tarjetas", tarjetas.ListTarjetasHandler())
	protected.Get("/tarjetas/:codigo", tarjetas.GetTarjetaHandler())
	protected.Post("/tarjetas/:codigo/activar", tarjetas.ActivarTarjetaHandler())
	protected.Post("/tarjetas/:codigo/redimir", tarjetas.RedimirTarjetaHandler())

	protected.Get("/promociones", promociones.ListPromocionesHandler())

	protected.Post("/vacaciones", vacaciones.CreateSolicitudHandler())
	protected.Get("/vacaciones", vacaciones.ListSolicitudesHandler())
	protected.Delete("/vacaciones/:id", vacaciones.DeleteSolicitudHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
