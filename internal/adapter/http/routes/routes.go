package routes

import (
	"log"
	"net/http"
	"os"

	_ "tapinvoice/docs" // swag generated
	"tapinvoice/internal/adapter/http/handlers"
	"tapinvoice/internal/adapter/persistence/repository"
	"tapinvoice/internal/infrastructure/database"
	"tapinvoice/internal/infrastructure/signing"
	"tapinvoice/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultPort = "8080"

// Run wires the invoice service together and starts the server.
func Run() {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	getRoutes(router)

	port := getenvDefault("PORT", defaultPort)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(router *gin.Engine) {
	ddb := database.ConnectDynamoDB()
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb)

	signer, err := signing.NewInvoiceSignerFromKeystore(
		os.Getenv("ISSUER_KEYSTORE_PATH"),
		os.Getenv("ISSUER_KEYSTORE_PASSPHRASE"),
	)
	if err != nil {
		log.Fatalf("Issuer keystore not usable, refusing to serve unsigned invoices: %v", err)
	}
	log.Printf("[invoice][routes] issuer address=%s", signer.Address().Hex())

	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, signer)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase)

	addPingRoutes(router)
	addInvoiceRoutes(router, invoiceHandler)
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(corsMiddleware())
}

// corsMiddleware lets any origin read invoices; a tap-to-pay page served from
// an arbitrary host must be able to fetch them. Preflights short-circuit with
// an empty response.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
