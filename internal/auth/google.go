package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/amacedo/users-api/internal/config"
	"github.com/amacedo/users-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	cfg               *config.Config
	googleOauthConfig *oauth2.Config
)

// Init wires the package to the process configuration. Must be called
// before the Google handlers are routed.
func Init(c *config.Config) {
	cfg = c
	googleOauthConfig = &oauth2.Config{
		RedirectURL:  c.GoogleRedirectURL,
		ClientID:     c.GoogleClientID,
		ClientSecret: c.GoogleClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
}

var (
	stateStore = make(map[string]time.Time)
	stateMutex sync.RWMutex
)

func generateState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func storeState(state string) {
	stateMutex.Lock()
	defer stateMutex.Unlock()
	stateStore[state] = time.Now().Add(5 * time.Minute)

	for k, v := range stateStore {
		if time.Now().After(v) {
			delete(stateStore, k)
		}
	}
}

func validateState(state string) bool {
	stateMutex.Lock()
	defer stateMutex.Unlock()

	expiry, exists := stateStore[state]
	if !exists || time.Now().After(expiry) {
		return false
	}
	delete(stateStore, state)
	return true
}

func GoogleLogin(c *fiber.Ctx) error {
	state := generateState()
	storeState(state)
	url := googleOauthConfig.AuthCodeURL(state)
	return c.Redirect(url)
}

func GoogleCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	if !validateState(state) {
		return c.Redirect(cfg.FrontendErrorURL)
	}

	code := c.Query("code")

	token, err := googleOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		return c.Redirect(cfg.FrontendErrorURL)
	}

	client := googleOauthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return c.Redirect(cfg.FrontendErrorURL)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var userData struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &userData); err != nil || userData.Email == "" {
		return c.Redirect(cfg.FrontendErrorURL)
	}

	u, appErr := FindOrCreateOAuthUser(userData.Email, userData.Name)
	if appErr != nil {
		return c.Redirect(cfg.FrontendErrorURL)
	}

	accessToken, err := utils.GenerateJWT(u.ID, u.Email, u.Role)
	if err != nil {
		return c.Redirect(cfg.FrontendErrorURL)
	}

	return c.Redirect(cfg.FrontendURL + "?token=" + accessToken)
}
