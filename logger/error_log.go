package logger

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys read when an error is logged. The middleware package sets
// them.
const (
	RequestIDKey = "request_id"
	OwnerIDKey   = "owner_id"
)

const maxStackFrames = 24

var sensitiveHeaderParts = []string{"authorization", "cookie", "token", "key", "secret"}

// LogError writes one structured error entry. When ctx is a *gin.Context the
// request id, owner, route and client ip are attached.
func LogError(ctx context.Context, err error, message string, metadata map[string]interface{}) {
	fields := make([]zap.Field, 0, 8+len(metadata))
	fields = append(fields, zap.Error(err), zap.String("error_type", errorType(err)))
	fields = append(fields, requestFields(ctx)...)
	if os.Getenv("ENVIRONMENT") != "production" {
		fields = append(fields, zap.String("stack_trace", getStackTrace(3)))
	}
	for k, v := range metadata {
		fields = append(fields, zap.Any(k, v))
	}
	GetLogger().Desugar().Error(message, fields...)
}

// LogHTTPError logs a request failure with redacted headers.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	LogError(c, err, message, map[string]interface{}{
		"status_code": statusCode,
		"headers":     filterSensitiveHeaders(c.Request.Header),
	})
}

func requestFields(ctx context.Context) []zap.Field {
	c, ok := ctx.(*gin.Context)
	if !ok || c.Request == nil {
		return nil
	}
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("ip_address", c.ClientIP()),
	}
	if route := c.FullPath(); route != "" {
		fields = append(fields, zap.String("route", route))
	}
	if id := c.GetString(RequestIDKey); id != "" {
		fields = append(fields, zap.String(RequestIDKey, id))
	}
	if owner := c.GetString(OwnerIDKey); owner != "" {
		fields = append(fields, zap.String(OwnerIDKey, owner))
	}
	return fields
}

// errorType names the concrete error type without its package path.
func errorType(err error) string {
	if err == nil {
		return ""
	}
	name := fmt.Sprintf("%T", err)
	return name[strings.LastIndexByte(name, '.')+1:]
}

func getStackTrace(skip int) string {
	pcs := make([]uintptr, maxStackFrames)
	frames := runtime.CallersFrames(pcs[:runtime.Callers(skip, pcs)])

	var b strings.Builder
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "runtime.") {
			fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		}
		if !more {
			return b.String()
		}
	}
}

// filterSensitiveHeaders redacts credentials. Provider keys travel in
// Authorization, so it is always dropped.
func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitiveHeader(name) {
			filtered[name] = "[REDACTED]"
		} else if len(values) > 0 {
			filtered[name] = values[0]
		}
	}
	return filtered
}

func isSensitiveHeader(name string) bool {
	lower := strings.ToLower(name)
	for _, part := range sensitiveHeaderParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
