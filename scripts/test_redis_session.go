package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/frontandrew/taxi/internal/pkg/redis"
	"github.com/frontandrew/taxi/internal/pkg/session"
	"github.com/google/uuid"
)

// Проверка Redis хранилища сессий на живом сервере:
// go run ./scripts/test_redis_session.go
func main() {
	fmt.Println("=========================================")
	fmt.Println("Redis Session Store Test")
	fmt.Println("=========================================")
	fmt.Println()

	client, err := redis.NewClient(redis.Config{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	if err != nil {
		fmt.Printf("❌ Failed to connect to Redis: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Println("✅ Connected to Redis")
	fmt.Println()

	ctx := context.Background()

	// Test 1: PING
	fmt.Println("Test 1: PING")
	if err := client.Ping(ctx); err != nil {
		fmt.Printf("❌ PING failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ PING successful")
	fmt.Println()

	prefix := "test:taxi:session:"
	store := session.NewRedisStore(client, prefix, time.Minute)
	sid := uuid.New()
	sess := store.Load(sid)

	// Test 2: значение по умолчанию для новой сессии
	fmt.Println("Test 2: default value")
	visits, err := session.GetInt(ctx, sess, "num_visits", 0)
	if err != nil {
		fmt.Printf("❌ GET failed: %v\n", err)
		os.Exit(1)
	}
	if visits != 0 {
		fmt.Printf("❌ New session should have 0 visits, got %d\n", visits)
		os.Exit(1)
	}
	fmt.Println("✅ New session has 0 visits")
	fmt.Println()

	// Test 3: счетчик посещений
	fmt.Println("Test 3: visit counter")
	for i := 1; i <= 3; i++ {
		visits, err = session.GetInt(ctx, sess, "num_visits", 0)
		if err != nil {
			fmt.Printf("❌ GET failed: %v\n", err)
			os.Exit(1)
		}
		if err := sess.Set(ctx, "num_visits", visits+1); err != nil {
			fmt.Printf("❌ SET failed: %v\n", err)
			os.Exit(1)
		}
	}

	visits, err = session.GetInt(ctx, store.Load(sid), "num_visits", 0)
	if err != nil || visits != 3 {
		fmt.Printf("❌ Counter should be 3, got %d (err: %v)\n", visits, err)
		os.Exit(1)
	}
	fmt.Printf("✅ num_visits = %d\n", visits)
	fmt.Println()

	// Test 4: продление TTL
	fmt.Println("Test 4: EXPIRE")
	if err := client.Expire(ctx, prefix+sid.String(), 10*time.Second); err != nil {
		fmt.Printf("❌ EXPIRE failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Session TTL = 10s")
	fmt.Println()

	// Test 5: удаление сессии
	fmt.Println("Test 5: destroy (cleanup)")
	if err := store.Destroy(ctx, sid); err != nil {
		fmt.Printf("❌ DEL failed: %v\n", err)
		os.Exit(1)
	}

	visits, err = session.GetInt(ctx, store.Load(sid), "num_visits", 0)
	if err != nil || visits != 0 {
		fmt.Printf("❌ Destroyed session should be empty, got %d (err: %v)\n", visits, err)
		os.Exit(1)
	}
	fmt.Println("✅ Verified session deleted")
	fmt.Println()

	fmt.Println("=========================================")
	fmt.Println("✅ All Redis session tests passed!")
	fmt.Println("=========================================")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
