package middlewares

const (
	ctxRequestIDKey = "request.id"
	ctxEmailKey     = "auth.email"
)
