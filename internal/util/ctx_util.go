package util

import (
	"context"

	"github.com/RoyceAzure/lab/rentfront/internal/constants"
	"github.com/google/uuid"
)

// WithRequestID 將request id放入上下文 未提供則產生新的uuid
// api client發送請求時會取出附帶於header 供後端與log串接
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return context.WithValue(ctx, constants.RequestIDKey, requestID)
}

// GetRequestIDFromContext 從上下文取出request id 不存在則回傳空字串
func GetRequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(constants.RequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
