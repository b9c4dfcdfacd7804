package main

import (
	_ "tapinvoice/docs"
	"tapinvoice/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Tap Invoice Service API
// @version         1.0
// @description     Signed crypto payment invoices for tap-to-pay flows, backed by DynamoDB.

// @host localhost:8080

// @BasePath  /

func main() {
	routes.Run()
}
