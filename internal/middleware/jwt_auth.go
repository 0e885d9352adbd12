package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"zitheke_dev_v1/internal/model"
)

// ==================== JWT config ====================

// JWTConfig configures token verification. Tokens are issued by the
// storefront's auth service and share its secret.
type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
}

// DefaultJWTConfig returns development settings.
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey:      "zitheke-secret-key-change-in-production",
		AccessTokenTTL: 2 * time.Hour,
		Issuer:         "zitheke",
	}
}

var jwtConfig = DefaultJWTConfig()

// SetJWTConfig replaces the active configuration.
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// GetJWTConfig returns the active configuration.
func GetJWTConfig() *JWTConfig {
	return jwtConfig
}

// ==================== Claims ====================

// Roles carried in the role claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserClaims identify the storefront user behind a request.
type UserClaims struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Identity converts the claims to the value passed to services.
func (c *UserClaims) Identity() model.Identity {
	return model.Identity{ID: c.UID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

// ==================== Token issuing ====================

// GenerateAccessToken signs an access token for who. Used by tooling and tests;
// production tokens come from the auth service.
func GenerateAccessToken(who model.Identity, role string) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UID:   who.ID,
		Name:  who.Name,
		Email: who.Email,
		Phone: who.Phone,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   "access",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtConfig.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// ==================== Token parsing ====================

// ParseToken verifies a token and returns its claims.
func ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ==================== Gin middleware ====================

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
	ContextKeyClaims = "claims"
)

func abortUnauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    401,
		"message": msg,
	})
	c.Abort()
}

// bearerClaims extracts and verifies the bearer token. On failure the claims
// are nil and the reason is returned.
func bearerClaims(c *gin.Context) (*UserClaims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "missing credentials"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "authorization header must be Bearer {token}"
	}

	claims, err := ParseToken(parts[1])
	if err != nil {
		return nil, "token is invalid or expired"
	}
	if claims.Subject != "access" {
		return nil, "wrong token type"
	}
	if claims.UID == "" {
		return nil, "token carries no user"
	}
	return claims, ""
}

func setClaims(c *gin.Context, claims *UserClaims) {
	c.Set(ContextKeyUserID, claims.UID)
	c.Set(ContextKeyRole, claims.Role)
	c.Set(ContextKeyClaims, claims)
}

// JWTAuth rejects requests without a valid access token.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, msg := bearerClaims(c)
		if claims == nil {
			abortUnauthorized(c, msg)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and lets the
// request through either way.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, _ := bearerClaims(c); claims != nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireRole only lets users with one of roles through. It must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		if role == "" {
			abortUnauthorized(c, "no role on request")
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "forbidden",
		})
		c.Abort()
	}
}

// ==================== Helpers ====================

// GetUserID returns the uid of the caller, or "".
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// GetUserRole returns the role of the caller, or "".
func GetUserRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}

// GetUserClaims returns the verified claims, or nil.
func GetUserClaims(c *gin.Context) *UserClaims {
	if claims, exists := c.Get(ContextKeyClaims); exists {
		if uc, ok := claims.(*UserClaims); ok {
			return uc
		}
	}
	return nil
}

// GetIdentity returns the caller's identity; it is anonymous when no token was verified.
func GetIdentity(c *gin.Context) model.Identity {
	if claims := GetUserClaims(c); claims != nil {
		return claims.Identity()
	}
	return model.Identity{}
}
