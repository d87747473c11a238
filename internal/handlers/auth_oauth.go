package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/meufreelas/meufreelas_be/internal/middleware"
	"github.com/meufreelas/meufreelas_be/internal/services/account"
	"github.com/meufreelas/meufreelas_be/internal/utils"
)

// OAuthHandler implements social login (google/github). A first login
// provisions a client identity with a throwaway password; later logins
// just resolve the existing identity.
type OAuthHandler struct {
	Accounts  *account.Service
	JWTSecret string
	Expires   int

	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string
	GithubClientID string
	GithubSecret   string
	GithubRedirect string

	FrontendBaseURL string
}

func (h *OAuthHandler) oauthCfg(provider string) *oauth2.Config {
	if provider == "github" {
		return &oauth2.Config{
			ClientID:     h.GithubClientID,
			ClientSecret: h.GithubSecret,
			RedirectURL:  h.GithubRedirect,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"user:email"},
		}
	}
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func (h *OAuthHandler) configured(provider string) bool {
	if provider == "github" {
		return h.GithubClientID != "" && h.GithubSecret != ""
	}
	return h.GoogleClientID != "" && h.GoogleSecret != ""
}

func (h *OAuthHandler) Start(c *fiber.Ctx) error {
	provider := c.Query("provider", "google")
	if provider != "google" && provider != "github" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "Provider inválido"})
	}
	if !h.configured(provider) {
		return c.JSON(fiber.Map{"ok": false, "error": "OAuth não configurado no servidor", "code": "OAUTH_NOT_CONFIGURED"})
	}

	st := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    st,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   10 * 60,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_provider",
		Value:    provider,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   10 * 60,
	})

	return c.Redirect(h.oauthCfg(provider).AuthCodeURL(st, oauth2.AccessTypeOffline), http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	provider := c.Cookies("oauth_provider", c.Query("provider", "google"))

	if code == "" || state == "" || c.Cookies("oauth_state") != state {
		return c.Redirect(h.FrontendBaseURL+"/auth?oauth_error="+provider, http.StatusTemporaryRedirect)
	}

	cfg := h.oauthCfg(provider)
	tok, err := cfg.Exchange(c.Context(), code)
	if err != nil {
		return c.Redirect(h.FrontendBaseURL+"/auth?oauth_error="+provider, http.StatusTemporaryRedirect)
	}

	client := cfg.Client(c.Context(), tok)
	email, name, err := fetchUserInfo(client, provider)
	if err != nil || email == "" {
		return c.Redirect(h.FrontendBaseURL+"/auth?oauth_error=email", http.StatusTemporaryRedirect)
	}

	user, err := h.Accounts.EnsureOAuthIdentity(c.Context(), email, name)
	if err != nil {
		return c.Redirect(h.FrontendBaseURL+"/auth?oauth_error=server", http.StatusTemporaryRedirect)
	}

	if jwtToken, err := utils.SignJWT(h.JWTSecret, user.ID, user.Type, h.Expires); err == nil {
		c.Cookie(&fiber.Cookie{
			Name:     middleware.CookieName,
			Value:    jwtToken,
			Path:     "/",
			HTTPOnly: true,
			Secure:   false,
			SameSite: "Lax",
			MaxAge:   h.Expires * 60,
		})
	}

	c.Cookie(&fiber.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1, HTTPOnly: true, Secure: false, SameSite: "Lax"})
	c.Cookie(&fiber.Cookie{Name: "oauth_provider", Value: "", Path: "/", MaxAge: -1, HTTPOnly: true, Secure: false, SameSite: "Lax"})

	redirect := h.FrontendBaseURL + "/auth?oauth_email=" + url.QueryEscape(email) + "&provider=" + url.QueryEscape(provider)
	return c.Redirect(redirect, http.StatusTemporaryRedirect)
}

type CompleteReq struct {
	Email string `json:"email"`
}

// Complete lets the SPA trade the oauth_email redirect parameter for the
// full user payload.
func (h *OAuthHandler) Complete(c *fiber.Ctx) error {
	var req CompleteReq
	if err := c.BodyParser(&req); err != nil || !strings.Contains(req.Email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "Dados inválidos"})
	}
	user, err := h.Accounts.PayloadByEmail(c.Context(), req.Email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "user": user})
}

func fetchUserInfo(client *http.Client, provider string) (email, name string, err error) {
	if provider == "github" {
		return fetchGithubUser(client)
	}

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	var gu struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return "", "", err
	}
	return strings.ToLower(strings.TrimSpace(gu.Email)), strings.TrimSpace(gu.Name), nil
}

func fetchGithubUser(client *http.Client) (email, name string, err error) {
	resp, err := client.Get("https://api.github.com/user/emails")
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", "", err
	}
	for _, e := range emails {
		if e.Primary {
			email = e.Email
			break
		}
	}
	if email == "" && len(emails) > 0 {
		email = emails[0].Email
	}

	resp2, err := client.Get("https://api.github.com/user")
	if err != nil {
		return email, "", nil
	}
	defer resp2.Body.Close()

	var gu struct {
		Name  string `json:"name"`
		Login string `json:"login"`
	}
	_ = json.NewDecoder(resp2.Body).Decode(&gu)
	name = gu.Name
	if name == "" {
		name = gu.Login
	}
	return strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(name), nil
}
