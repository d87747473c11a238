package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/meufreelas/meufreelas_be/internal/apperr"
	"github.com/meufreelas/meufreelas_be/internal/middleware"
	"github.com/meufreelas/meufreelas_be/internal/models"
	"github.com/meufreelas/meufreelas_be/internal/services/account"
	"github.com/meufreelas/meufreelas_be/internal/services/mailer"
	"github.com/meufreelas/meufreelas_be/internal/utils"
)

type AuthHandler struct {
	Accounts        *account.Service
	Mailer          *mailer.Mailer
	JWTSecret       string
	Expires         int
	FrontendBaseURL string
}

// fail writes the error envelope. Typed errors keep their status and
// code; anything else is logged and collapsed into the generic 500.
func fail(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return c.Status(ae.Status).JSON(fiber.Map{
			"ok":    false,
			"error": ae.Message,
			"code":  ae.Code,
		})
	}
	log.Printf("[auth] erro inesperado: %v", err)
	return c.Status(apperr.ErrServer.Status).JSON(fiber.Map{
		"ok":    false,
		"error": apperr.ErrServer.Message,
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, userID uint64, role models.Role) {
	token, err := utils.SignJWT(h.JWTSecret, userID, role, h.Expires)
	if err != nil {
		log.Printf("[auth] falha ao assinar token: %v", err)
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
}

type RegisterReq struct {
	Role     string `json:"role"`
	Type     string `json:"type"` // alias aceito pelo app antigo
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.ErrInvalidPayload)
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.Role(req.Type)
	}
	name := strings.TrimSpace(req.Name)

	if !role.AccountRole() || req.Email == "" || req.Password == "" || name == "" {
		return fail(c, apperr.ErrInvalidPayload)
	}

	user, created, err := h.Accounts.Register(c.Context(), req.Email, req.Password, name, role)
	if err != nil {
		return fail(c, err)
	}

	if created {
		h.sendWelcome(user.Email, name, string(role))
	}

	h.setSessionCookie(c, user.ID, user.Type)
	return c.JSON(fiber.Map{"ok": true, "user": user})
}

func (h *AuthHandler) sendWelcome(email, name, role string) {
	subject := "Bem-vindo ao MeuFreelas"
	html := fmt.Sprintf(
		`<p>Olá, %s!</p><p>Conta criada com sucesso como %s.</p><p>Acesse: <a href="%s/login">Login</a></p>`,
		name, role, h.FrontendBaseURL,
	)
	h.Mailer.SendAsync(email, name, subject, html)
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.ErrInvalidPayload)
	}
	if req.Email == "" || req.Password == "" {
		return fail(c, apperr.ErrInvalidPayload)
	}

	user, err := h.Accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	h.setSessionCookie(c, user.ID, user.Type)
	return c.JSON(fiber.Map{"ok": true, "user": user})
}

type AuthActionReq struct {
	Action      string  `json:"action"`
	UserID      *uint64 `json:"userId"`
	TargetType  string  `json:"targetType"`
	AccountType string  `json:"accountType"`
}

// AuthAction dispatches the action-style endpoint kept for the SPA:
// switch_account_type and create_secondary_account.
func (h *AuthHandler) AuthAction(c *fiber.Ctx) error {
	var req AuthActionReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.ErrInvalidPayload)
	}

	switch req.Action {
	case "switch_account_type":
		target := models.Role(req.TargetType)
		if req.UserID == nil || !target.AccountRole() {
			return fail(c, apperr.ErrInvalidPayload)
		}
		user, err := h.Accounts.SwitchAccountType(c.Context(), *req.UserID, target)
		if err != nil {
			return fail(c, err)
		}
		h.setSessionCookie(c, user.ID, user.Type)
		return c.JSON(fiber.Map{"ok": true, "user": user})

	case "create_secondary_account":
		target := models.Role(req.AccountType)
		if req.UserID == nil || !target.AccountRole() {
			return fail(c, apperr.ErrInvalidPayload)
		}
		user, err := h.Accounts.CreateSecondaryAccount(c.Context(), *req.UserID, target)
		if err != nil {
			return fail(c, err)
		}
		h.setSessionCookie(c, user.ID, user.Type)
		return c.JSON(fiber.Map{"ok": true, "user": user})

	default:
		return fail(c, apperr.ErrInvalidAction)
	}
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"ok": true})
}

// Me returns the payload of the identity in the session cookie.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, ok := c.Locals("userId").(uint64)
	if !ok || id == 0 {
		return fail(c, apperr.ErrUnauthorized)
	}
	user, err := h.Accounts.UserPayload(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "user": user})
}
