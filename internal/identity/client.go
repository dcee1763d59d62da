// Package identity habla con el proveedor de identidad hospedado (API estilo
// GoTrue). El backend nunca guarda contraseñas: el login se delega aquí y el
// perfil local solo aporta rol y sucursal.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"luna27-backend/internal/config"
)

var (
	// ErrCredencialesInvalidas: el proveedor rechazó email/contraseña o la
	// cuenta está bloqueada. Se reporta al cliente como 401 genérico.
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	// ErrProveedorNoDisponible: fallo de red o 5xx del proveedor. El detalle
	// se loguea; la respuesta al cliente nunca lo incluye.
	ErrProveedorNoDisponible = errors.New("proveedor de identidad no disponible")
)

type ProviderUser struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata"`
}

// Provider es lo que los handlers necesitan del proveedor. El cliente HTTP
// real lo implementa; los tests usan un doble.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*ProviderUser, error)
	AdminCreateUser(ctx context.Context, email, password string, metadata map[string]any) (*ProviderUser, error)
	AdminDeleteUser(ctx context.Context, providerID string) error
}

type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.IdentityURL,
		anonKey:    cfg.IdentityAnonKey,
		serviceKey: cfg.IdentityServiceKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type signInResponse struct {
	AccessToken string       `json:"access_token"`
	User        ProviderUser `json:"user"`
}

// SignIn verifica email/contraseña contra el proveedor (grant password).
func (c *Client) SignIn(ctx context.Context, email, password string) (*ProviderUser, error) {
	body, status, err := c.do(ctx, http.MethodPost, "/token?grant_type=password",
		map[string]string{"email": email, "password": password}, c.anonKey)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK:
		var res signInResponse
		if err := json.Unmarshal(body, &res); err != nil {
			return nil, fmt.Errorf("%w: respuesta ilegible: %v", ErrProveedorNoDisponible, err)
		}
		return &res.User, nil
	case status == http.StatusBadRequest, status == http.StatusUnauthorized, status == http.StatusForbidden:
		return nil, ErrCredencialesInvalidas
	default:
		return nil, fmt.Errorf("%w: HTTP %d", ErrProveedorNoDisponible, status)
	}
}

// AdminCreateUser da de alta una cuenta con la clave service-role. La cuenta
// nace confirmada: el alta la hace un admin, no hay flujo de email.
func (c *Client) AdminCreateUser(ctx context.Context, email, password string, metadata map[string]any) (*ProviderUser, error) {
	payload := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}
	if metadata != nil {
		payload["user_metadata"] = metadata
	}

	body, status, err := c.do(ctx, http.MethodPost, "/admin/users", payload, c.serviceKey)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, fmt.Errorf("%w: alta rechazada con HTTP %d", ErrProveedorNoDisponible, status)
	}

	var user ProviderUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: respuesta ilegible: %v", ErrProveedorNoDisponible, err)
	}
	return &user, nil
}

// AdminDeleteUser elimina una cuenta del proveedor. Es la acción compensatoria
// del alta en dos pasos cuando el insert local falla.
func (c *Client) AdminDeleteUser(ctx context.Context, providerID string) error {
	_, status, err := c.do(ctx, http.MethodDelete, "/admin/users/"+providerID, nil, c.serviceKey)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("%w: baja rechazada con HTTP %d", ErrProveedorNoDisponible, status)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, apiKey string) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrProveedorNoDisponible, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrProveedorNoDisponible, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrProveedorNoDisponible, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrProveedorNoDisponible, err)
	}

	return body, resp.StatusCode, nil
}
