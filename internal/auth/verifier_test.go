package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"luna27-backend/internal/database"
	"luna27-backend/internal/identity"
	"luna27-backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type proveedorFalso struct {
	cuenta    *identity.ProviderUser
	signInErr error

	creado      *identity.ProviderUser
	createErr   error
	eliminados  []string
	deleteErr   error
	signInCalls int
}

func (p *proveedorFalso) SignIn(ctx context.Context, email, password string) (*identity.ProviderUser, error) {
	p.signInCalls++
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	return p.cuenta, nil
}

func (p *proveedorFalso) AdminCreateUser(ctx context.Context, email, password string, metadata map[string]any) (*identity.ProviderUser, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	if p.creado == nil {
		p.creado = &identity.ProviderUser{ID: "prov-nuevo", Email: email, Metadata: metadata}
	}
	return p.creado, nil
}

func (p *proveedorFalso) AdminDeleteUser(ctx context.Context, providerID string) error {
	p.eliminados = append(p.eliminados, providerID)
	return p.deleteErr
}

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

func filasUsuario(u *models.Usuario) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "provider_id", "email", "nombre", "rol", "sucursal_id", "activo", "created_at", "updated_at"}).
		AddRow(u.ID, u.ProviderID, u.Email, u.Nombre, string(u.Rol), u.SucursalID, u.Activo, time.Now(), time.Now())
}

func TestVerificarCredencialesCamposVacios(t *testing.T) {
	prov := &proveedorFalso{}

	_, err := VerificarCredenciales(context.Background(), prov, "", "x")
	assert.ErrorIs(t, err, identity.ErrCredencialesInvalidas)
	_, err = VerificarCredenciales(context.Background(), prov, "a@b.com", "")
	assert.ErrorIs(t, err, identity.ErrCredencialesInvalidas)
	assert.Zero(t, prov.signInCalls, "el proveedor no debe consultarse con campos vacíos")
}

func TestVerificarCredencialesProveedorRechaza(t *testing.T) {
	prov := &proveedorFalso{signInErr: identity.ErrCredencialesInvalidas}

	_, err := VerificarCredenciales(context.Background(), prov, "a@luna27.mx", "mal")
	assert.ErrorIs(t, err, identity.ErrCredencialesInvalidas)
}

func TestVerificarCredencialesPerfilActivo(t *testing.T) {
	mock := dbFalsa(t)
	esperado := &models.Usuario{ID: 4, ProviderID: "prov-4", Email: "ana@luna27.mx", Nombre: "Ana", Rol: models.RolManager, Activo: true}
	mock.ExpectQuery(`SELECT \* FROM "usuarios" WHERE email =`).
		WillReturnRows(filasUsuario(esperado))

	prov := &proveedorFalso{cuenta: &identity.ProviderUser{ID: "prov-4", Email: "ana@luna27.mx"}}

	usuario, err := VerificarCredenciales(context.Background(), prov, "Ana@Luna27.mx", "secreta")
	require.NoError(t, err)
	assert.Equal(t, esperado.ID, usuario.ID)
	assert.Equal(t, models.RolManager, usuario.Rol)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificarCredencialesPerfilDesactivado(t *testing.T) {
	mock := dbFalsa(t)
	inactivo := &models.Usuario{ID: 9, ProviderID: "prov-9", Email: "baja@luna27.mx", Nombre: "Baja", Rol: models.RolStaff, Activo: false}
	mock.ExpectQuery(`SELECT \* FROM "usuarios" WHERE email =`).
		WillReturnRows(filasUsuario(inactivo))

	prov := &proveedorFalso{cuenta: &identity.ProviderUser{ID: "prov-9", Email: "baja@luna27.mx"}}

	_, err := VerificarCredenciales(context.Background(), prov, "baja@luna27.mx", "secreta")
	assert.ErrorIs(t, err, identity.ErrCredencialesInvalidas)
}

// Una cuenta del proveedor sin perfil local produce una identidad mínima con
// el rol de menor privilegio, nunca admin.
func TestVerificarCredencialesIdentidadSintetizada(t *testing.T) {
	mock := dbFalsa(t)
	mock.ExpectQuery(`SELECT \* FROM "usuarios" WHERE email =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	prov := &proveedorFalso{cuenta: &identity.ProviderUser{ID: "prov-solo", Email: "nueva@luna27.mx"}}

	usuario, err := VerificarCredenciales(context.Background(), prov, "nueva@luna27.mx", "secreta")
	require.NoError(t, err)
	assert.Zero(t, usuario.ID)
	assert.Equal(t, "prov-solo", usuario.ProviderID)
	assert.Equal(t, "nueva", usuario.Nombre)
	assert.Equal(t, models.RolStaff, usuario.Rol)
	assert.True(t, usuario.Activo)
}

func TestVerificarCredencialesMetadataConRol(t *testing.T) {
	mock := dbFalsa(t)
	mock.ExpectQuery(`SELECT \* FROM "usuarios" WHERE email =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	prov := &proveedorFalso{cuenta: &identity.ProviderUser{
		ID:       "prov-meta",
		Email:    "meta@luna27.mx",
		Metadata: map[string]any{"rol": "manager"},
	}}

	usuario, err := VerificarCredenciales(context.Background(), prov, "meta@luna27.mx", "secreta")
	require.NoError(t, err)
	assert.Equal(t, models.RolManager, usuario.Rol)
}

func TestVerificarCredencialesProveedorCaido(t *testing.T) {
	prov := &proveedorFalso{signInErr: errors.New("connection refused")}

	_, err := VerificarCredenciales(context.Background(), prov, "a@luna27.mx", "secreta")
	require.Error(t, err)
	assert.NotErrorIs(t, err, identity.ErrCredencialesInvalidas)
}
