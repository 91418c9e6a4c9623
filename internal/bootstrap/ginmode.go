package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode switches gin to release mode outside development and test.
func SetGinMode(env string) {
	switch env {
	case "development":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}
