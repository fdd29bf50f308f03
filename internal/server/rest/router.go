package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes. The users route sits behind the
// bearer guard; everything else is public.
func NewRouter(logger logging.Logger, us UserService, secret []byte, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(logger))

	if len(allowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
		corsConfig.AllowHeaders = []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
		}
		corsConfig.ExposeHeaders = []string{requestIDHeader}
		router.Use(cors.New(corsConfig))
	}

	h := &Handler{users: us, logger: logger}

	router.GET("/", loginPage)
	router.GET("/healthz", handleHealth)
	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.GET("/users", RequireBearer(secret, logger), h.ListUsers)

	return router
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
