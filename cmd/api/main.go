package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"storefront-backend/pkg/logger"
)

func main() {
	// .env chỉ có ở local, production đọc thẳng env của container
	envFileErr := godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	if envFileErr != nil {
		logger.Debug("No .env file loaded", map[string]interface{}{"error": envFileErr.Error()})
	}

	if env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}
