package server

import (
	"log"
	"strings"
	"time"

	"devpath.app/profileservice/internal/config"
	"devpath.app/profileservice/internal/messaging"
	"devpath.app/profileservice/pkg/storage"

	activityHttp "devpath.app/profileservice/internal/modules/activity/delivery/http"
	activityRepo "devpath.app/profileservice/internal/modules/activity/repository"
	activityService "devpath.app/profileservice/internal/modules/activity/service"

	eventService "devpath.app/profileservice/internal/modules/event/service"

	leaderboardHttp "devpath.app/profileservice/internal/modules/leaderboard/delivery/http"
	leaderboardService "devpath.app/profileservice/internal/modules/leaderboard/service"

	levelHttp "devpath.app/profileservice/internal/modules/levels/delivery/http"
	levelRepo "devpath.app/profileservice/internal/modules/levels/repository"
	levelService "devpath.app/profileservice/internal/modules/levels/service"

	metricsHttp "devpath.app/profileservice/internal/modules/metrics/delivery/http"
	metricsService "devpath.app/profileservice/internal/modules/metrics/service"

	notifService "devpath.app/profileservice/internal/modules/notification/service"

	profileHttp "devpath.app/profileservice/internal/modules/profile/delivery/http"
	profileRepo "devpath.app/profileservice/internal/modules/profile/repository"
	profileService "devpath.app/profileservice/internal/modules/profile/service"

	streakRepo "devpath.app/profileservice/internal/modules/streak/repository"
	streakService "devpath.app/profileservice/internal/modules/streak/service"

	weeklyHttp "devpath.app/profileservice/internal/modules/weekly/delivery/http"
	weeklyRepo "devpath.app/profileservice/internal/modules/weekly/repository"
	weeklyService "devpath.app/profileservice/internal/modules/weekly/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	messaging   *messaging.Service
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	profiles := profileRepo.NewProfileRepository(db)
	activities := activityRepo.NewDailyActivityRepository(db)
	streaks := streakRepo.NewStreakRepository(db)
	weeks := weeklyRepo.NewWeeklyProgressRepository(db)
	levelRules := levelRepo.NewLevelRuleRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage(storage.CloudinaryConfig{
		CloudName:    cfg.CloudinaryCloudName,
		APIKey:       cfg.CloudinaryAPIKey,
		APISecret:    cfg.CloudinaryAPISecret,
		UploadFolder: cfg.CloudinaryUploadFolder,
	})
	if err != nil {
		log.Printf("Avatar storage unavailable, uploads disabled: %v", err)
		imageStorage = nil
	}

	activitySvc := activityService.NewActivityService(activities)
	streakSvc := streakService.NewStreakService(streaks, profiles)
	weeklySvc := weeklyService.NewWeeklyService(weeks)
	levelSvc := levelService.NewLevelService(levelRules)
	notificationSvc := notifService.NewNotificationService(redisClient)

	profileSvc := profileService.NewProfileService(profiles, activitySvc, weeklySvc, levelSvc, notificationSvc, imageStorage)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	activityHandler := activityHttp.NewActivityHandler(activitySvc)
	weeklyHandler := weeklyHttp.NewWeeklyHandler(weeklySvc)
	levelHandler := levelHttp.NewLevelHandler(levelSvc)

	leaderboardSvc := leaderboardService.NewLeaderboardService(profiles, activities)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	metricsSvc := metricsService.NewMetricsService(activities, profiles)
	metricsHandler := metricsHttp.NewMetricsHandler(metricsSvc)

	dedup := eventService.NewDedupCache(cfg.DedupWindow)
	processor := eventService.NewEventProcessor(profiles, activitySvc, streakSvc, weeklySvc, levelSvc, notificationSvc, dedup, cfg.StalenessMaxAge)
	consumer := messaging.NewRabbitMQConsumer(cfg.RabbitMQURL)
	messagingSvc := messaging.NewService(consumer, processor, cfg.QueueName)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/users", profileHandler.CreateProfile)
		api.GET("/users/:userId/profile", profileHandler.GetProfile)
		api.POST("/users/:userId/profile", profileHandler.GetOrCreateProfile)
		api.PUT("/users/:userId", profileHandler.UpdateProfile)
		api.DELETE("/users/:userId", profileHandler.DeleteProfile)

		api.POST("/users/:userId/points/add", profileHandler.AddPoints)
		api.GET("/users/:userId/stats", profileHandler.GetUserStats)
		api.GET("/users/:userId/weekly-progress", weeklyHandler.GetWeeklyProgress)
		api.GET("/users/:userId/daily-activities", activityHandler.GetDailyActivities)
		api.GET("/users/:userId/monthly-metrics", metricsHandler.GetMonthlyMetrics)

		api.POST("/users/:userId/avatar/upload", profileHandler.UploadAvatar)
		api.PUT("/users/:userId/avatar/url", profileHandler.UpdateAvatarByURL)

		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		api.GET("/levels/rules", levelHandler.GetLevelRules)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		messaging:   messagingSvc,
	}
}

// StartMessaging connects to the broker and begins consuming. Safe to call
// before or after Run.
func (s *Server) StartMessaging() error {
	return s.messaging.Start()
}

func (s *Server) StopMessaging() {
	s.messaging.Stop()
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
