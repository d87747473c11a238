// Package apperr defines the error taxonomy of the HTTP contract: every
// failure the API reports carries an HTTP status, a stable machine code
// and a human-readable message in the product language.
package apperr

import "github.com/gofiber/fiber/v2"

type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

var (
	ErrInvalidPayload = New(fiber.StatusBadRequest, "INVALID_PAYLOAD", "Dados inválidos")
	ErrInvalidAction  = New(fiber.StatusBadRequest, "INVALID_ACTION", "Ação inválida")

	ErrUnauthorized = New(fiber.StatusUnauthorized, "UNAUTHORIZED", "Não autenticado")

	// Mesma mensagem para email inexistente e senha errada, para não
	// permitir enumeração de contas.
	ErrInvalidCredentials = New(fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	ErrAccountBlocked     = New(fiber.StatusUnauthorized, "ACCOUNT_BLOCKED", "Conta bloqueada")

	ErrEmailExists              = New(fiber.StatusConflict, "EMAIL_EXISTS", "Este email já está cadastrado.")
	ErrEmailExistsWrongPassword = New(fiber.StatusConflict, "EMAIL_EXISTS_WRONG_PASSWORD", "Este email já está cadastrado.")
	ErrEmailRoleExists          = New(fiber.StatusConflict, "EMAIL_ROLE_EXISTS", "Este email já possui uma conta ativa, faça login.")

	ErrNoAccount    = New(fiber.StatusNotFound, "NO_ACCOUNT", "Conta não existente para o tipo solicitado")
	ErrUserNotFound = New(fiber.StatusNotFound, "USER_NOT_FOUND", "Usuário não encontrado")

	ErrInvalidResetToken = New(fiber.StatusBadRequest, "INVALID_RESET_TOKEN", "Token inválido ou expirado")

	// Mensagem genérica de 500; detalhes nunca vazam para o cliente.
	ErrServer = New(fiber.StatusInternalServerError, "SERVER_ERROR", "Falha de conexão com o servidor")
)
