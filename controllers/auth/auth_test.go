package authControllers_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/config"
	"github.com/Nellmory/MehaAndShubi/mailer"
	"github.com/Nellmory/MehaAndShubi/models"
	"github.com/Nellmory/MehaAndShubi/routes"
)

const (
	testSecret   = "test-jwt-secret"
	testBotToken = "123456:TEST-TOKEN"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.RevokedToken{},
	))

	cfg := &config.Config{JWTSecret: testSecret, TelegramBotToken: testBotToken}
	r := gin.New()
	routes.SetupRoutes(r, db, cfg, mailer.Disabled{})
	return r, db
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	User struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	Tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	} `json:"tokens"`
}

func register(t *testing.T, r *gin.Engine, username string) authResponse {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"username": username,
		"password": "s3cret-pass",
		"email":    username + "@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Tokens.Access)
	require.NotEmpty(t, resp.Tokens.Refresh)
	return resp
}

func TestRegisterLoginProfileLogout(t *testing.T) {
	r, _ := newTestRouter(t)
	reg := register(t, r, "masha")

	// Duplicate username rejected.
	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "masha", "password": "whatever",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate email rejected.
	w = doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "masha2", "password": "whatever", "email": "masha@example.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Login with the right password.
	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"username": "masha", "password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Wrong password and unknown user look the same.
	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"username": "masha", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"username": "nobody", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Profile behind the middleware.
	w = doJSON(r, http.MethodGet, "/auth/profile", reg.Tokens.Access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Equal(t, "masha", profile.Username)

	w = doJSON(r, http.MethodGet, "/auth/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout revokes the refresh token exactly once.
	w = doJSON(r, http.MethodPost, "/auth/logout", reg.Tokens.Access, gin.H{"refresh": reg.Tokens.Refresh})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/auth/logout", reg.Tokens.Access, gin.H{"refresh": reg.Tokens.Refresh})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid token")
}

func signTelegramPayload(data map[string]string, botToken string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+data[k])
	}
	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}

func postTelegramForm(r *gin.Engine, data map[string]string) *httptest.ResponseRecorder {
	form := url.Values{}
	for k, v := range data {
		form.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, "/telegram/auth", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTelegramAuthEndpoint(t *testing.T) {
	r, db := newTestRouter(t)

	data := map[string]string{
		"id":         "555000111",
		"first_name": "Meha",
		"username":   "mehashubi",
		"auth_date":  strconv.FormatInt(time.Now().Unix(), 10),
	}
	data["hash"] = signTelegramPayload(data, testBotToken)

	w := postTelegramForm(r, data)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), "tg_555000111")

	// Same telegram id resolves to the same local user.
	w = postTelegramForm(r, data)
	require.Equal(t, http.StatusOK, w.Code)
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "tg_555000111").Count(&count).Error)
	require.EqualValues(t, 1, count)

	// Tampered payload is rejected.
	tampered := map[string]string{}
	for k, v := range data {
		tampered[k] = v
	}
	tampered["first_name"] = "Mallory"
	w = postTelegramForm(r, tampered)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid signature but outside the replay window.
	stale := map[string]string{
		"id":         "555000111",
		"first_name": "Meha",
		"auth_date":  strconv.FormatInt(time.Now().Add(-2*time.Hour).Unix(), 10),
	}
	stale["hash"] = signTelegramPayload(stale, testBotToken)
	w = postTelegramForm(r, stale)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "outdated")
}
