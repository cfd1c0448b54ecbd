package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"devpath.app/profileservice/internal/config"
	"devpath.app/profileservice/internal/entity"
	"devpath.app/profileservice/internal/server"
	"devpath.app/profileservice/pkg/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := seedLevelRules(db); err != nil {
		log.Fatalf("failed to seed level rules: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	}

	srv := server.NewServer(db, redisClient, cfg)

	// The HTTP API stays up even when the broker is unreachable.
	if err := srv.StartMessaging(); err != nil {
		log.Printf("Failed to start messaging: %v", err)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		srv.StopMessaging()
		os.Exit(0)
	}()

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.ProfileUser{},
		&entity.DailyActivity{},
		&entity.StreakSnapshot{},
		&entity.WeeklyProgress{},
		&entity.LevelRule{},
	)
}

// seedLevelRules installs the default 1000-points-per-level table on first
// boot. Existing rules are left alone so operators can retune thresholds.
func seedLevelRules(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.LevelRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rules := make([]entity.LevelRule, 0, 10)
	for level := 1; level <= 10; level++ {
		rules = append(rules, entity.LevelRule{
			Level:     level,
			MinPoints: (level - 1) * 1000,
			MaxPoints: level*1000 - 1,
		})
	}

	return db.Create(&rules).Error
}
