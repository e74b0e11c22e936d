// Package auth implementa el login del operador. La aplicación es de sesión
// única: un usuario configurado por entorno con hash bcrypt, sin tabla de
// usuarios ni roles.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/bymretail/inventario-api/internal/domain"
	pkgjwt "github.com/bymretail/inventario-api/pkg/jwt"
)

// Config credenciales esperadas y parámetros del token.
type Config struct {
	User         string
	PasswordHash string // bcrypt
	JWTSecret    string
	ExpMinutes   int
	Issuer       string
}

// AuthUseCase valida credenciales del operador y emite tokens.
type AuthUseCase struct {
	cfg Config
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(cfg Config) *AuthUseCase {
	return &AuthUseCase{cfg: cfg}
}

// Login compara las credenciales contra las configuradas y devuelve un JWT.
// Cualquier discrepancia (usuario, contraseña, hash ausente) responde el
// mismo ErrUnauthorized para no filtrar cuál campo falló.
func (uc *AuthUseCase) Login(user, password string) (string, error) {
	if uc.cfg.PasswordHash == "" {
		return "", fmt.Errorf("%w: login deshabilitado, falta ADMIN_PASSWORD_HASH", domain.ErrUnauthorized)
	}
	if user != uc.cfg.User {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	token, err := pkgjwt.Generate(uc.cfg.JWTSecret, user, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return "", fmt.Errorf("emitir token: %w", err)
	}
	return token, nil
}

// ExpSeconds segundos de vigencia del token emitido.
func (uc *AuthUseCase) ExpSeconds() int {
	return uc.cfg.ExpMinutes * 60
}
