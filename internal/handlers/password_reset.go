package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/meufreelas/meufreelas_be/internal/apperr"
	"github.com/meufreelas/meufreelas_be/internal/services/account"
	"github.com/meufreelas/meufreelas_be/internal/services/mailer"
)

const resetTokenTTL = 30 * time.Minute

// PasswordResetHandler implements the forgot/reset flow with single-use
// tokens kept in redis. The forgot response is the same whether or not
// the email exists.
type PasswordResetHandler struct {
	Accounts        *account.Service
	RDB             *redis.Client
	Mailer          *mailer.Mailer
	FrontendBaseURL string
}

type ForgotPasswordReq struct {
	Email string `json:"email"`
}

func (h *PasswordResetHandler) Forgot(c *fiber.Ctx) error {
	var req ForgotPasswordReq
	if err := c.BodyParser(&req); err != nil || !strings.Contains(req.Email, "@") {
		return fail(c, apperr.ErrInvalidPayload)
	}

	// Resposta genérica sempre; o trabalho real só acontece se o email
	// existir, e nada na resposta distingue os dois casos.
	if userID, err := h.Accounts.FindUserIDByEmail(c.Context(), req.Email); err == nil {
		token := uuid.NewString()
		if err := h.RDB.Set(c.Context(), resetKey(token), userID, resetTokenTTL).Err(); err == nil {
			link := h.FrontendBaseURL + "/reset-password?token=" + token
			html := fmt.Sprintf(
				`<p>Olá!</p><p>Recebemos um pedido para redefinir sua senha no MeuFreelas.</p><p><a href="%s">Redefinir senha</a> (válido por 30 minutos)</p>`,
				link,
			)
			h.Mailer.SendAsync(req.Email, "", "Redefinição de senha - MeuFreelas", html)
		}
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Se o email estiver cadastrado, enviaremos instruções para recuperar a senha.",
	})
}

type ResetPasswordReq struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (h *PasswordResetHandler) Reset(c *fiber.Ctx) error {
	var req ResetPasswordReq
	if err := c.BodyParser(&req); err != nil || req.Token == "" || len(req.Password) < 6 {
		return fail(c, apperr.ErrInvalidPayload)
	}

	// GETDEL: o token só vale uma vez, mesmo sob requisições repetidas.
	val, err := h.RDB.GetDel(c.Context(), resetKey(req.Token)).Result()
	if errors.Is(err, redis.Nil) {
		return fail(c, apperr.ErrInvalidResetToken)
	}
	if err != nil {
		return fail(c, err)
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return fail(c, apperr.ErrInvalidResetToken)
	}

	if err := h.Accounts.ResetPassword(c.Context(), userID, req.Password); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"ok": true, "message": "Senha redefinida com sucesso."})
}

func resetKey(token string) string {
	return "pwreset:" + token
}
