package middlewares

import (
	"context"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"net"
	"net/http"
)

func sessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	return session, ok && session != nil
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
