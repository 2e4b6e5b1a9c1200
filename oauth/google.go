// Package oauth delegates email verification to Google. The provider only
// tells us which address the visitor controls; what that address may do is
// decided by the allow-list and customer records.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// Post-verification flows selected by the state parameter.
const (
	FlowSignup         = "signup"
	FlowForgotPassword = "forgot-password"
	FlowAdminLogin     = "admin-login"
)

var (
	authEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenEndpoint    = "https://oauth2.googleapis.com/token"
	userinfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"

	httpClient = &http.Client{Timeout: 10 * time.Second}
)

// stateStore maps the opaque state nonce to the flow it belongs to. Entries
// live 24h and the janitor sweeps expired ones server-side.
var stateStore = cache.New(24*time.Hour, time.Hour)

// StageFlow records a flow under a fresh nonce and returns the nonce.
func StageFlow(flow string) string {
	nonce := uuid.NewString()
	stateStore.Set(nonce, flow, cache.DefaultExpiration)
	return nonce
}

// ConsumeFlow resolves and invalidates a nonce.
func ConsumeFlow(nonce string) (string, bool) {
	v, found := stateStore.Get(nonce)
	if !found {
		return "", false
	}
	stateStore.Delete(nonce)
	flow, ok := v.(string)
	return flow, ok
}

func redirectToAuth(c *fiber.Ctx, flow string) error {
	q := url.Values{}
	q.Set("client_id", os.Getenv("GOOGLE_CLIENT_ID"))
	q.Set("redirect_uri", os.Getenv("GOOGLE_OAUTH_REDIRECT_URI"))
	q.Set("response_type", "code")
	q.Set("scope", "email")
	q.Set("state", StageFlow(flow))
	return c.Redirect(authEndpoint+"?"+q.Encode(), fiber.StatusFound)
}

// GoogleAuth starts the signup email-verification flow.
func GoogleAuth(c *fiber.Ctx) error {
	return redirectToAuth(c, FlowSignup)
}

// GoogleAuthForgotPassword starts the recovery email-prefill flow.
func GoogleAuthForgotPassword(c *fiber.Ctx) error {
	return redirectToAuth(c, FlowForgotPassword)
}

// GoogleAuthAdminLogin starts the admin-login email-prefill flow.
func GoogleAuthAdminLogin(c *fiber.Ctx) error {
	return redirectToAuth(c, FlowAdminLogin)
}

func frontendURL() string {
	if u := os.Getenv("FRONTEND_URL"); u != "" {
		return strings.TrimSuffix(u, "/")
	}
	return "http://localhost:3000"
}

// GoogleCallback finishes the round trip: validate state, trade the code for
// a token, read the verified email, and send the browser back to the flow
// that asked for verification.
func GoogleCallback(c *fiber.Ctx) error {
	failure := frontendURL() + "/signup.html?error=oauth_failed"

	if c.Query("error") != "" {
		return c.Redirect(failure, fiber.StatusFound)
	}

	flow, ok := ConsumeFlow(c.Query("state"))
	if !ok {
		return c.Redirect(failure, fiber.StatusFound)
	}

	code := c.Query("code")
	if code == "" {
		return c.Redirect(failure, fiber.StatusFound)
	}

	email, err := verifiedEmail(c.Context(), code)
	if err != nil || email == "" {
		return c.Redirect(failure, fiber.StatusFound)
	}

	switch flow {
	case FlowAdminLogin:
		return c.Redirect(frontendURL()+"/admin-login.html?verified_email="+url.QueryEscape(email), fiber.StatusFound)
	case FlowForgotPassword:
		return c.Redirect(frontendURL()+"/forgot-password.html?email="+url.QueryEscape(email), fiber.StatusFound)
	default:
		return c.Redirect(frontendURL()+"/signup.html?verified_email="+url.QueryEscape(email), fiber.StatusFound)
	}
}

func verifiedEmail(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", os.Getenv("GOOGLE_CLIENT_ID"))
	form.Set("client_secret", os.Getenv("GOOGLE_CLIENT_SECRET"))
	form.Set("redirect_uri", os.Getenv("GOOGLE_OAUTH_REDIRECT_URI"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("token exchange: http %d", resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token exchange: empty access token")
	}

	uiReq, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoEndpoint, nil)
	if err != nil {
		return "", err
	}
	uiReq.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	uiResp, err := httpClient.Do(uiReq)
	if err != nil {
		return "", err
	}
	defer uiResp.Body.Close()

	if uiResp.StatusCode/100 != 2 {
		return "", fmt.Errorf("userinfo: http %d", uiResp.StatusCode)
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(uiResp.Body).Decode(&info); err != nil {
		return "", err
	}

	return strings.ToLower(info.Email), nil
}
