package tarjetas

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"luna27-backend/internal/auth"
	"luna27-backend/internal/config"
	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testSecret = "clave-de-prueba-suficientemente-larga-123"

func dbFalsa(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db, PreferSimpleProtocol: true}), &gorm.Config{})
	require.NoError(t, err)

	anterior := database.DB
	database.DB = gdb
	t.Cleanup(func() { database.DB = anterior })

	return mock
}

func appTarjetas() *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})

	grupo := app.Group("/api", auth.SessionMiddleware(cfg))
	grupo.Get("/tarjetas/:codigo", GetTarjetaHandler())
	grupo.Post("/tarjetas/:codigo/activar", ActivarTarjetaHandler())
	grupo.Post("/tarjetas/:codigo/redimir", RedimirTarjetaHandler())

	return app
}

func peticionStaff(t *testing.T, method, target, body string) *http.Request {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	token, err := auth.GenerateSessionToken(testSecret, &models.Usuario{
		ID: 5, Email: "staff@luna27.mx", Nombre: "Staff", Rol: models.RolStaff, Activo: true,
	})
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})

	return req
}

func filaTarjeta(estado models.EstadoTarjeta, saldo float64, pinHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "sucursal_id", "codigo", "pin_hash", "cliente_id", "monto_inicial", "saldo", "estado", "vencimiento"}).
		AddRow(10, 1, "cod-10", pinHash, nil, 100.0, saldo, string(estado), nil)
}

// Redimir el saldo completo agota la tarjeta y deja el pago registrado.
func TestRedimirSaldoCompleto(t *testing.T) {
	mock := dbFalsa(t)

	mock.ExpectQuery(`SELECT \* FROM "tarjeta_regalos" WHERE codigo =`).
		WillReturnRows(filaTarjeta(models.TarjetaActiva, 100, ""))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tarjeta_regalos"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "pagos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	app := appTarjetas()

	resp, err := app.Test(peticionStaff(t, "POST", "/api/tarjetas/cod-10/redimir", `{"monto":100}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res TarjetaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, models.TarjetaAgotada, res.Estado)
	assert.Zero(t, res.Saldo)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedimirSaldoInsuficiente(t *testing.T) {
	mock := dbFalsa(t)
	mock.ExpectQuery(`SELECT \* FROM "tarjeta_regalos" WHERE codigo =`).
		WillReturnRows(filaTarjeta(models.TarjetaActiva, 20, ""))

	app := appTarjetas()

	resp, err := app.Test(peticionStaff(t, "POST", "/api/tarjetas/cod-10/redimir", `{"monto":50}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// Una tarjeta pendiente todavía no se puede redimir: primero hay que
// activarla.
func TestRedimirTarjetaPendiente(t *testing.T) {
	mock := dbFalsa(t)
	mock.ExpectQuery(`SELECT \* FROM "tarjeta_regalos" WHERE codigo =`).
		WillReturnRows(filaTarjeta(models.TarjetaPendiente, 100, ""))

	app := appTarjetas()

	resp, err := app.Test(peticionStaff(t, "POST", "/api/tarjetas/cod-10/redimir", `{"monto":10}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRedimirConPinIncorrecto(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)

	mock := dbFalsa(t)
	mock.ExpectQuery(`SELECT \* FROM "tarjeta_regalos" WHERE codigo =`).
		WillReturnRows(filaTarjeta(models.TarjetaActiva, 100, string(hash)))

	app := appTarjetas()

	resp, err := app.Test(peticionStaff(t, "POST", "/api/tarjetas/cod-10/redimir", `{"monto":10,"pin":"9999"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestActivarTarjetaPendiente(t *testing.T) {
	mock := dbFalsa(t)

	mock.ExpectQuery(`SELECT \* FROM "tarjeta_regalos" WHERE codigo =`).
		WillReturnRows(filaTarjeta(models.TarjetaPendiente, 100, ""))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tarjeta_regalos"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	app := appTarjetas()

	resp, err := app.Test(peticionStaff(t, "POST", "/api/tarjetas/cod-10/activar", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res TarjetaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, models.TarjetaActiva, res.Estado)
}

func TestActivarTarjetaCancelada(t *testing.T) {
	mock := dbFalsa(t)
	mock.ExpectQuery(`SELECT \* FROM "tarjeta_regalos" WHERE codigo =`).
		WillReturnRows(filaTarjeta(models.TarjetaCancelada, 100, ""))

	app := appTarjetas()

	resp, err := app.Test(peticionStaff(t, "POST", "/api/tarjetas/cod-10/activar", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetTarjetaInexistente(t *testing.T) {
	mock := dbFalsa(t)
	mock.ExpectQuery(`SELECT \* FROM "tarjeta_regalos" WHERE codigo =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	app := appTarjetas()

	resp, err := app.Test(peticionStaff(t, "GET", "/api/tarjetas/no-existe", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
