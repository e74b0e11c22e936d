package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bymretail/inventario-api/internal/application/auth"
	"github.com/bymretail/inventario-api/internal/application/dto"
)

// AuthHandler maneja el login del operador.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login del operador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "user, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, err := h.uc.Login(in.User, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token, ExpiresIn: h.uc.ExpSeconds()})
}
