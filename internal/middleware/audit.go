package middleware

import (
	"context"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== Audit context ====================

type auditContextKey struct{}

// AuditInfo is the user a database write is attributed to.
type AuditInfo struct {
	UID  string
	Name string
}

// WithAuditInfo stores the acting user in ctx.
func WithAuditInfo(ctx context.Context, uid, name string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, &AuditInfo{UID: uid, Name: name})
}

// GetAuditInfo returns the acting user stored in ctx, or nil.
func GetAuditInfo(ctx context.Context) *AuditInfo {
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info
	}
	return nil
}

// GetAuditUserID returns the acting uid, or "".
func GetAuditUserID(ctx context.Context) string {
	if info := GetAuditInfo(ctx); info != nil {
		return info.UID
	}
	return ""
}

// ==================== Gin middleware ====================

// AuditContext copies the JWT user into the request context for the GORM callbacks.
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		who := GetIdentity(c)
		if !who.Anonymous() {
			ctx := WithAuditInfo(c.Request.Context(), who.ID, who.Name)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// ==================== GORM callbacks ====================

// RegisterAuditCallbacks fills CreatedBy/UpdatedBy from the context on writes.
// Values already set by the caller win.
func RegisterAuditCallbacks(db *gorm.DB) error {
	err := db.Callback().Create().Before("gorm:create").Register("audit:create", func(tx *gorm.DB) {
		uid := auditUID(tx)
		if uid == "" {
			return
		}
		setAuditField(tx, "CreatedBy", uid)
		setAuditField(tx, "UpdatedBy", uid)
	})
	if err != nil {
		return err
	}

	return db.Callback().Update().Before("gorm:update").Register("audit:update", func(tx *gorm.DB) {
		uid := auditUID(tx)
		if uid == "" {
			return
		}
		setAuditField(tx, "UpdatedBy", uid)
	})
}

func auditUID(tx *gorm.DB) string {
	if tx.Statement.Context == nil {
		return ""
	}
	return GetAuditUserID(tx.Statement.Context)
}

func setAuditField(tx *gorm.DB, fieldName string, value string) {
	if tx.Statement.Schema == nil {
		return
	}

	field := tx.Statement.Schema.LookUpField(fieldName)
	if field == nil {
		return
	}

	switch tx.Statement.ReflectValue.Kind() {
	case reflect.Struct:
		if _, isZero := field.ValueOf(tx.Statement.Context, tx.Statement.ReflectValue); isZero {
			_ = field.Set(tx.Statement.Context, tx.Statement.ReflectValue, value)
		}
	case reflect.Slice:
		for i := 0; i < tx.Statement.ReflectValue.Len(); i++ {
			rv := tx.Statement.ReflectValue.Index(i)
			if _, isZero := field.ValueOf(tx.Statement.Context, rv); isZero {
				_ = field.Set(tx.Statement.Context, rv, value)
			}
		}
	}
}
