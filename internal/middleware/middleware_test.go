package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zitheke_dev_v1/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var seller = model.Identity{ID: "u-100", Name: "Amina", Email: "amina@example.com", Phone: "+265991000000"}

func bearer(t *testing.T, who model.Identity, role string) string {
	t.Helper()
	token, err := GenerateAccessToken(who, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== JWT ====================

func TestParseToken_RoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(seller, RoleUser)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, seller, claims.Identity())
	assert.Equal(t, RoleUser, claims.Role)
}

func TestParseToken_RejectsForeignSecret(t *testing.T) {
	claims := &UserClaims{UID: "u-1", RegisteredClaims: jwt.RegisteredClaims{Subject: "access"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestJWTAuth(t *testing.T) {
	r := gin.New()
	r.GET("/me", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": GetUserID(c), "name": GetIdentity(c).Name})
	})

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"valid token", bearer(t, seller, RoleUser), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodGet, "/me", tt.auth)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"uid":"u-100"`)
				assert.Contains(t, w.Body.String(), `"name":"Amina"`)
			}
		})
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	r := gin.New()
	r.GET("/whoami", OptionalAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "anon=%v", GetIdentity(c).Anonymous())
	})

	assert.Equal(t, "anon=true", serve(r, http.MethodGet, "/whoami", "").Body.String())
	assert.Equal(t, "anon=true", serve(r, http.MethodGet, "/whoami", "Bearer broken").Body.String())
	assert.Equal(t, "anon=false", serve(r, http.MethodGet, "/whoami", bearer(t, seller, RoleUser)).Body.String())
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin", JWTAuth(), RequireRole(RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", bearer(t, seller, RoleUser)).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/admin", bearer(t, seller, RoleAdmin)).Code)
}

// ==================== Cooldown ====================

func TestCooldownLimiter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewCooldownLimiter()
	limiter.now = func() time.Time { return now }
	key := UserActionKey("u-1", ActionPostAd)

	assert.True(t, limiter.CheckOnly(key, time.Minute).Allowed)
	limiter.MarkExecuted(key)

	now = now.Add(20 * time.Second)
	res := limiter.CheckOnly(key, time.Minute)
	assert.False(t, res.Allowed)
	assert.Equal(t, 40*time.Second, res.RetryAfter)

	now = now.Add(40 * time.Second)
	assert.True(t, limiter.CheckOnly(key, time.Minute).Allowed)

	// another user is unaffected
	assert.True(t, limiter.CheckOnly(UserActionKey("u-2", ActionPostAd), time.Minute).Allowed)
}

func TestCooldown_OnlySuccessStartsTheClock(t *testing.T) {
	limiter := NewCooldownLimiter()
	status := http.StatusBadGateway

	r := gin.New()
	r.POST("/submit", OptionalAuth(), Cooldown(limiter, ActionPostAd, time.Hour), func(c *gin.Context) {
		c.Status(status)
	})
	auth := bearer(t, seller, RoleUser)

	assert.Equal(t, http.StatusBadGateway, serve(r, http.MethodPost, "/submit", auth).Code)

	status = http.StatusOK
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/submit", auth).Code)

	w := serve(r, http.MethodPost, "/submit", auth)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "retry_after")

	// anonymous callers are left to the handler
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/submit", "").Code)
}

func TestCooldown_ZeroIntervalDisables(t *testing.T) {
	limiter := NewCooldownLimiter()
	r := gin.New()
	r.POST("/submit", OptionalAuth(), Cooldown(limiter, ActionPostAd, 0), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	auth := bearer(t, seller, RoleUser)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/submit", auth).Code)
	}
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "Please wait 1 seconds before trying again.", formatRetryMessage(200*time.Millisecond))
	assert.Equal(t, "Please wait 2 minutes before trying again.", formatRetryMessage(2*time.Minute))
	assert.Equal(t, "Please wait 1 minutes 5 seconds before trying again.", formatRetryMessage(65*time.Second))
}

// ==================== Audit ====================

type auditedThing struct {
	model.BaseModel
	Label string
}

func TestRegisterAuditCallbacks(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&auditedThing{}))
	require.NoError(t, RegisterAuditCallbacks(db))

	ctx := WithAuditInfo(context.Background(), "u-7", "Chikondi")
	thing := &auditedThing{Label: "first"}
	require.NoError(t, db.WithContext(ctx).Create(thing).Error)
	assert.Equal(t, "u-7", thing.CreatedBy)
	assert.Equal(t, "u-7", thing.UpdatedBy)

	preset := &auditedThing{Label: "second", BaseModel: model.BaseModel{CreatedBy: "system"}}
	require.NoError(t, db.WithContext(ctx).Create(preset).Error)
	assert.Equal(t, "system", preset.CreatedBy)

	anon := &auditedThing{Label: "third"}
	require.NoError(t, db.Create(anon).Error)
	assert.Empty(t, anon.CreatedBy)
}

func TestAuditContext(t *testing.T) {
	r := gin.New()
	r.GET("/x", OptionalAuth(), AuditContext(), func(c *gin.Context) {
		c.String(http.StatusOK, GetAuditUserID(c.Request.Context()))
	})

	assert.Equal(t, "u-100", serve(r, http.MethodGet, "/x", bearer(t, seller, RoleUser)).Body.String())
	assert.Empty(t, serve(r, http.MethodGet, "/x", "").Body.String())
}

// ==================== Logging ====================

func TestRecovery(t *testing.T) {
	r := gin.New()
	log := zaptest.NewLogger(t)
	r.Use(RequestLogger(log), Recovery(log))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
