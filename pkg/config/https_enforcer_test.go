package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func httpsRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := GetDefaultConfig()
	cfg.EnforceHTTPS = enabled

	router := gin.New()
	router.Use(NewHTTPSEnforcer(cfg, zap.NewNop()).HTTPSMiddleware())
	router.GET("/todos", func(c *gin.Context) { c.Status(http.StatusOK) })

	return router
}

func TestHTTPSEnforcerRedirects(t *testing.T) {
	RegisterTestingT(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "http://api.example.com/todos", nil)
	httpsRouter(true).ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusMovedPermanently))
	Expect(w.Header().Get("Location")).To(Equal("https://api.example.com/todos"))
}

func TestHTTPSEnforcerTrustsForwardedProto(t *testing.T) {
	RegisterTestingT(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "http://api.example.com/todos", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	httpsRouter(true).ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))
}

func TestHTTPSEnforcerDisabledAndLocalhost(t *testing.T) {
	RegisterTestingT(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "http://api.example.com/todos", nil)
	httpsRouter(false).ServeHTTP(w, req)
	Expect(w.Code).To(Equal(http.StatusOK))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "http://localhost:5000/todos", nil)
	httpsRouter(true).ServeHTTP(w, req)
	Expect(w.Code).To(Equal(http.StatusOK))
}
