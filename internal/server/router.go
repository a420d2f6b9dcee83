package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	catalogH "github.com/altarajoyas/catalog-service/internal/catalog/handler"
	inventoryH "github.com/altarajoyas/catalog-service/internal/inventory/handler"
	mediaH "github.com/altarajoyas/catalog-service/internal/media/handler"
	"github.com/altarajoyas/catalog-service/pkg/logger"
)

type RouterConfig struct {
	CatalogHandler   *catalogH.CatalogHandler
	InventoryHandler *inventoryH.InventoryHandler
	MediaHandler     *mediaH.MediaHandler
	AllowOrigins     []string
	MaxUploadBytes   int64
	DB               *sqlx.DB
	Logger           logger.ZapLogger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(RequestID())
	router.Use(RequestLogger(cfg.Logger))
	router.Use(Recovery(cfg.Logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept-Language", "X-Requested-With"},
		AllowCredentials: true,
	}))

	if cfg.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = cfg.MaxUploadBytes
	}

	router.GET("/healthz", func(c *gin.Context) {
		if cfg.DB != nil {
			if err := cfg.DB.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/brands", cfg.CatalogHandler.ListBrands)
		api.GET("/product-types", cfg.CatalogHandler.ListProductTypes)
		api.GET("/inventory", cfg.CatalogHandler.ListVariants)
		api.GET("/inventory/:id", cfg.CatalogHandler.GetVariant)
		api.POST("/inventory/update", cfg.InventoryHandler.UpdateVariant)
		api.POST("/product-images", cfg.MediaHandler.UploadImage)
	}

	return router
}
