package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== Cooldown middleware ====================

// Cooldown limits how often one user may complete action. Only requests that
// succeed (2xx) start the cooldown, so a rejected submission can be retried
// at once. Anonymous requests pass through; the handler decides what to do
// with them. interval <= 0 disables the limit.
//
// Usage:
//
//	wizard.POST("/:id/submit",
//	    middleware.Cooldown(limiter, middleware.ActionPostAd, time.Minute),
//	    wizardCtl.Submit,
//	)
func Cooldown(limiter *CooldownLimiter, action ActionType, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := GetUserID(c)
		if interval <= 0 || uid == "" {
			c.Next()
			return
		}

		key := UserActionKey(uid, action)
		result := limiter.CheckOnly(key, interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after": int(result.RetryAfter.Seconds()),
					"action":      action,
				},
			})
			c.Abort()
			return
		}

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			limiter.MarkExecuted(key)
		}
	}
}

// ==================== Helpers ====================

func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	if seconds < 60 {
		return fmt.Sprintf("Please wait %d seconds before trying again.", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60
	if remainingSeconds == 0 {
		return fmt.Sprintf("Please wait %d minutes before trying again.", minutes)
	}
	return fmt.Sprintf("Please wait %d minutes %d seconds before trying again.", minutes, remainingSeconds)
}
