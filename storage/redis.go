package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

var cacheCtx = context.Background()

const availabilityTTL = 60 * time.Second

func InitializeRedis() {
	// Get Redis URL from environment, fallback to localhost for development
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: "",
		DB:       0,
	})

	log.Println("Redis initialized with address:", redisURL)
}

// AvailabilityCacheKey names the cached weekly grid for an area.
func AvailabilityCacheKey(areaID uint, weekStart time.Time) string {
	return fmt.Sprintf("availability:%d:%s", areaID, weekStart.Format("2006-01-02"))
}

// GetCachedAvailability returns the cached grid JSON, or "" on miss or
// when Redis is not configured.
func GetCachedAvailability(areaID uint, weekStart time.Time) string {
	if Redis == nil {
		return ""
	}
	val, err := Redis.Get(cacheCtx, AvailabilityCacheKey(areaID, weekStart)).Result()
	if err != nil {
		return ""
	}
	return val
}

// CacheAvailability stores the grid JSON with a short TTL. The grid is
// cheap to recompute, the TTL only smooths bursts of calendar views.
func CacheAvailability(areaID uint, weekStart time.Time, payload string) {
	if Redis == nil {
		return
	}
	Redis.Set(cacheCtx, AvailabilityCacheKey(areaID, weekStart), payload, availabilityTTL)
}

// InvalidateAvailability drops every cached week for the area. Called on
// any reservation write so the next grid view reflects it.
func InvalidateAvailability(areaID uint) {
	if Redis == nil {
		return
	}
	pattern := fmt.Sprintf("availability:%d:*", areaID)
	keys, err := Redis.Keys(cacheCtx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	Redis.Del(cacheCtx, keys...)
}
