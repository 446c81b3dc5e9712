package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ronniefr/api-logger/accesslog"
	"github.com/ronniefr/api-logger/internal/config"
)

// drain pops access log lines shipped to Redis by the redis sink and prints
// them to stdout, standing in for a real log collector.
func main() {
	cfg := config.Load()
	if cfg.Log.RedisAddr == "" {
		log.Fatal().Msg("LOG_REDIS_ADDR is required")
	}
	key := cfg.Log.RedisKey
	if key == "" {
		key = accesslog.DefaultRedisKey
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Log.RedisAddr})
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Msgf("draining %s from %s", key, cfg.Log.RedisAddr)
	for {
		res, err := client.BLPop(ctx, time.Second, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("drain stopped")
				return
			}
			log.Error().Err(err).Msg("pop failed")
			time.Sleep(time.Second)
			continue
		}
		fmt.Println(res[1])
	}
}
