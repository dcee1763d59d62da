package auth

import (
	"time"

	"luna27-backend/internal/config"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookieName es la única fuente de verdad de la sesión: no hay
	// tabla de sesiones en el servidor, el token ES la sesión.
	SessionCookieName = "luna27_session"
	SessionDuration   = 7 * 24 * time.Hour
)

type SessionClaims struct {
	UsuarioID  uint       `json:"usuario_id"`
	ProviderID string     `json:"provider_id"`
	Email      string     `json:"email"`
	Nombre     string     `json:"nombre"`
	Rol        models.Rol `json:"rol"`
	SucursalID *uint      `json:"sucursal_id"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(secret string, u *models.Usuario) (string, error) {
	claims := &SessionClaims{
		UsuarioID:  u.ID,
		ProviderID: u.ProviderID,
		Email:      u.Email,
		Nombre:     u.Nombre,
		Rol:        u.Rol,
		SucursalID: u.SucursalID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionDuration)), // 7 días
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken devuelve nil ante cualquier token malformado, vencido o
// con firma ajena. Los llamadores tratan nil igual que "sin sesión".
func ParseSessionToken(secret, tokenStr string) *SessionClaims {
	if tokenStr == "" {
		return nil
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// SessionCookie arma la cookie con los atributos fijos de emisión:
// HttpOnly, SameSite=Lax, Secure solo en producción, Path=/, 7 días.
func SessionCookie(cfg *config.Config, token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// ExpiredSessionCookie borra la sesión del navegador (logout).
func ExpiredSessionCookie(cfg *config.Config) *fiber.Cookie {
	c := SessionCookie(cfg, "")
	c.MaxAge = -1
	c.Expires = time.Now().Add(-time.Hour)
	return c
}
