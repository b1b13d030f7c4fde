package main

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"sharyat/config"
	"sharyat/controller"
	"sharyat/cron"
	"sharyat/docs"
	"sharyat/repository"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"gorm.io/gorm"
)

// @title           Sharyat Backend API
// @version         1.0
// @description     Backend API for bullock cart race records.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	t := time.Now()

	cfg := config.Env()
	db, err := config.InitDB(
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.DatabaseName,
	)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	err = r.SetTrustedProxies(nil)
	if err != nil {
		fmt.Println("Failed to set trusted proxies:", err)
		return
	}
	addLogger(r)
	addMetrics(r)
	addDocs(r)
	setCors(r)
	cacheStore := persistence.NewInMemoryStore(60 * time.Second)
	controller.SetRoutes(r, db, cacheStore)

	scheduler, err := cron.StartRecurringJobs(db)
	if err != nil {
		log.Fatalf("Failed to start recurring jobs: %v", err)
	}
	defer scheduler.Stop()

	startNotificationDispatcher(db)

	fmt.Println("Server started in", time.Since(t))
	err = r.Run(":8000")
	if err != nil {
		fmt.Println("Failed to start server:", err)
	}
}

// startNotificationDispatcher runs the push queue consumer in the background.
// A missing broker or FCM credentials disables pushes but not the API.
func startNotificationDispatcher(db *gorm.DB) {
	dispatcher, err := cron.NewDispatchService(context.Background(), db)
	if err != nil {
		logrus.WithError(err).Warn("push notification dispatcher disabled")
		return
	}
	go func() {
		if err := dispatcher.Run(); err != nil {
			logrus.WithError(err).Error("notification dispatcher stopped")
		}
	}()
}

func addLogger(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/metrics"},
	}))
}

func addMetrics(r *gin.Engine) {
	p := ginprometheus.NewPrometheus("gin")
	re := regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		url := strings.Split(c.Request.URL.String(), "?")[0]
		return re.ReplaceAllString(url, "?")
	}
	p.MetricsPath = "/metrics"
	p.Use(r)
}

func addDocs(r *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

func setCors(r *gin.Engine) {
	corsConfig := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsConfig))
}
