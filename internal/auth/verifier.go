package auth

import (
	"context"
	"errors"
	"strings"

	"luna27-backend/internal/database"
	"luna27-backend/internal/identity"
	"luna27-backend/internal/models"

	"gorm.io/gorm"
)

// VerificarCredenciales delega la verificación al proveedor externo y luego
// carga el perfil local. Una cuenta del proveedor sin perfil local produce
// una identidad sintetizada con el rol de menor privilegio.
func VerificarCredenciales(ctx context.Context, prov identity.Provider, email, password string) (*models.Usuario, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, identity.ErrCredencialesInvalidas
	}

	cuenta, err := prov.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	var usuario models.Usuario
	err = database.DB.Where("email = ?", email).First(&usuario).Error
	switch {
	case err == nil:
		if !usuario.Activo {
			// Cuenta desactivada localmente: mismo 401 genérico que una
			// contraseña incorrecta, sin revelar la causa.
			return nil, identity.ErrCredencialesInvalidas
		}
		return &usuario, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return identidadSintetizada(cuenta), nil
	default:
		return nil, err
	}
}

// identidadSintetizada arma un perfil mínimo para cuentas que existen en el
// proveedor pero no tienen fila local: nombre tomado del prefijo del email y
// rol staff salvo que los metadatos del proveedor digan otra cosa.
func identidadSintetizada(cuenta *identity.ProviderUser) *models.Usuario {
	nombre := cuenta.Email
	if i := strings.Index(cuenta.Email, "@"); i > 0 {
		nombre = cuenta.Email[:i]
	}

	rol := models.RolStaff
	if meta, ok := cuenta.Metadata["rol"].(string); ok && models.Rol(meta).Nivel() > 0 {
		rol = models.Rol(meta)
	}

	return &models.Usuario{
		ProviderID: cuenta.ID,
		Email:      cuenta.Email,
		Nombre:     nombre,
		Rol:        rol,
		Activo:     true,
	}
}
