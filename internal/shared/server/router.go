package server

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"dreamer-backend/internal/documents"
	"dreamer-backend/internal/payments"
	"dreamer-backend/internal/shared/config"
	"dreamer-backend/internal/shared/server/middleware"
	"dreamer-backend/internal/shared/server/respond"
)

//go:embed index.html
var indexPage []byte

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config    config.Config
	Documents *documents.Handler
	Payments  *payments.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	deps.Documents.RegisterRoutes(r)
	deps.Payments.RegisterRoutes(r)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
