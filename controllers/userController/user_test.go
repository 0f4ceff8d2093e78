package userController

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cardagency/config"
	"cardagency/dashboard"
	"cardagency/database"
	"cardagency/middleware"
	"cardagency/models"
	"cardagency/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// identityStub fakes the provider's admin REST surface. failDelete makes
// account deletion fail, to exercise the partial-failure path.
func identityStub(t *testing.T, failDelete bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admin/users":
			email := r.URL.Query().Get("email")
			if email == "" {
				// paged listing for the sweep; not used in these tests
				w.Write([]byte(`{"users":[]}`))
				return
			}
			w.Write([]byte(`{"users":[{"id":"acc-1","email":"` + email + `"}]}`))
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/admin/users/"):
			if failDelete {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"message":"provider unavailable"}`))
				return
			}
			w.Write([]byte(`{}`))
		case r.Method == http.MethodPost && r.URL.Path == "/admin/users":
			var body struct {
				Email string `json:"email"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.Email == "taken@agency.test" {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(`{"message":"A user with this email address has already been registered"}`))
				return
			}
			w.Write([]byte(`{"id":"acc-new","email":"` + body.Email + `"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func setupApp(t *testing.T, failDelete bool) *fiber.App {
	t.Helper()

	stub := identityStub(t, failDelete)
	t.Cleanup(stub.Close)

	config.AppConfig = &config.Config{
		JWTKey:             "test-secret",
		SaltRound:          4,
		IdentityApiURL:     stub.URL,
		IdentityServiceKey: "service-key",
	}

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.BankCode{},
		&models.ApplicationForm{},
		&models.KycDetail{},
	))
	database.Database = database.DbInstance{Db: db}

	dashboard.Use(dashboard.NewState(store.New(db), zap.NewNop()))

	app := fiber.New()
	app.All("/api/create-user", CreateUser)
	app.All("/api/delete-user", DeleteUser)
	app.All("/api/get-all-users", GetAllUsers)
	return app
}

func seedUser(t *testing.T, name, email, role string) {
	t.Helper()
	require.NoError(t, database.Database.Db.Create(&models.User{
		Name:     name,
		Email:    email,
		Role:     role,
		Password: "hashed",
	}).Error)
}

func tokenFor(t *testing.T, email, name, role string) string {
	t.Helper()
	token, err := middleware.GenerateJWT(1, name, role, email)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	parsed := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func TestDeleteUser_WrongMethod(t *testing.T) {
	app := setupApp(t, false)
	resp, _ := doJSON(t, app, http.MethodGet, "/api/delete-user", "", nil)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
}

func TestDeleteUser_MissingToken(t *testing.T) {
	app := setupApp(t, false)
	resp, body := doJSON(t, app, http.MethodPost, "/api/delete-user", "", map[string]string{"email": "x@agency.test"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing or invalid token", body["error"])
}

func TestDeleteUser_NoProfileRow(t *testing.T) {
	app := setupApp(t, false)
	token := tokenFor(t, "ghost@agency.test", "Ghost", models.RoleAdmin)
	resp, _ := doJSON(t, app, http.MethodPost, "/api/delete-user", token, map[string]string{"email": "x@agency.test"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteUser_AgentForbidden(t *testing.T) {
	app := setupApp(t, false)
	seedUser(t, "Jane", "jane@agency.test", models.RoleAgent)
	token := tokenFor(t, "jane@agency.test", "Jane", models.RoleAgent)

	resp, body := doJSON(t, app, http.MethodPost, "/api/delete-user", token, map[string]string{"email": "x@agency.test"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Forbidden: Insufficient permissions", body["error"])
}

func TestDeleteUser_MissingEmail(t *testing.T) {
	app := setupApp(t, false)
	seedUser(t, "Admin", "admin@agency.test", models.RoleAdmin)
	token := tokenFor(t, "admin@agency.test", "Admin", models.RoleAdmin)

	resp, body := doJSON(t, app, http.MethodPost, "/api/delete-user", token, map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing email", body["error"])
}

func TestDeleteUser_UnknownEmail(t *testing.T) {
	app := setupApp(t, false)
	seedUser(t, "Admin", "admin@agency.test", models.RoleAdmin)
	token := tokenFor(t, "admin@agency.test", "Admin", models.RoleAdmin)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/delete-user", token, map[string]string{"email": "nobody@agency.test"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteUser_ProviderFailureKeepsProfile(t *testing.T) {
	app := setupApp(t, true)
	seedUser(t, "Admin", "admin@agency.test", models.RoleAdmin)
	seedUser(t, "Jane", "jane@agency.test", models.RoleAgent)
	token := tokenFor(t, "admin@agency.test", "Admin", models.RoleAdmin)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/delete-user", token, map[string]string{"email": "jane@agency.test"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Profile delete was never attempted.
	var count int64
	database.Database.Db.Model(&models.User{}).Where("email = ?", "jane@agency.test").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteUser_Success(t *testing.T) {
	app := setupApp(t, false)
	seedUser(t, "Admin", "admin@agency.test", models.RoleAdmin)
	seedUser(t, "Jane", "jane@agency.test", models.RoleAgent)
	token := tokenFor(t, "admin@agency.test", "Admin", models.RoleAdmin)

	resp, body := doJSON(t, app, http.MethodPost, "/api/delete-user", token, map[string]string{"email": "jane@agency.test"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var count int64
	database.Database.Db.Model(&models.User{}).Where("email = ?", "jane@agency.test").Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestGetAllUsers(t *testing.T) {
	app := setupApp(t, false)
	seedUser(t, "Admin", "admin@agency.test", models.RoleAdmin)
	seedUser(t, "Jane", "jane@agency.test", models.RoleAgent)

	t.Run("requires token", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/get-all-users", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("agent forbidden", func(t *testing.T) {
		token := tokenFor(t, "jane@agency.test", "Jane", models.RoleAgent)
		resp, _ := doJSON(t, app, http.MethodGet, "/api/get-all-users", token, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin sees all rows", func(t *testing.T) {
		token := tokenFor(t, "admin@agency.test", "Admin", models.RoleAdmin)
		resp, body := doJSON(t, app, http.MethodGet, "/api/get-all-users", token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		users, ok := body["users"].([]interface{})
		require.True(t, ok)
		assert.Len(t, users, 2)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("provisions account and profile", func(t *testing.T) {
		app := setupApp(t, false)
		seedUser(t, "Admin", "admin@agency.test", models.RoleAdmin)
		token := tokenFor(t, "admin@agency.test", "Admin", models.RoleAdmin)

		resp, body := doJSON(t, app, http.MethodPost, "/api/create-user", token, map[string]interface{}{
			"name":     "Pedro Santos",
			"email":    "pedro@agency.test",
			"password": "secret123",
			"role":     models.RoleAgent,
			"bank_codes": []map[string]string{
				{"bank": "BDO", "code": "BDO-9"},
			},
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])

		var created models.User
		require.NoError(t, database.Database.Db.Preload("BankCodes").Where("email = ?", "pedro@agency.test").First(&created).Error)
		assert.Equal(t, models.RoleAgent, created.Role)
		require.Len(t, created.BankCodes, 1)
		assert.Equal(t, "BDO-9", created.BankCodes[0].Code)
	})

	t.Run("duplicate email reported verbatim", func(t *testing.T) {
		app := setupApp(t, false)
		seedUser(t, "Admin", "admin@agency.test", models.RoleAdmin)
		token := tokenFor(t, "admin@agency.test", "Admin", models.RoleAdmin)

		resp, body := doJSON(t, app, http.MethodPost, "/api/create-user", token, map[string]interface{}{
			"name":     "Dup",
			"email":    "taken@agency.test",
			"password": "secret123",
			"role":     models.RoleAgent,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "already been registered")
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		app := setupApp(t, false)
		seedUser(t, "Admin", "admin@agency.test", models.RoleAdmin)
		token := tokenFor(t, "admin@agency.test", "Admin", models.RoleAdmin)

		resp, _ := doJSON(t, app, http.MethodPost, "/api/create-user", token, map[string]interface{}{
			"name":     "Odd",
			"email":    "odd@agency.test",
			"password": "secret123",
			"role":     "superuser",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
