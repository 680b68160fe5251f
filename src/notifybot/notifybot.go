package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bandhall/bandhall/src/api/data"
	"github.com/bandhall/bandhall/src/notifybot/bot"
	"github.com/bandhall/bandhall/src/notifybot/config"
)

func main() {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "dev:test@tcp(localhost:3306)/bandhall?parseTime=true"
	}
	db := data.MustMySQL(dsn)

	cfg := config.Load(db)
	rdb := data.MustRedis(cfg.RedisURL)

	b, err := bot.New(bot.Config{Token: cfg.Token, DB: db, Redis: rdb})
	if err != nil {
		log.Fatalf("notifybot: %v", err)
	}
	if err := b.Start(); err != nil {
		log.Fatalf("notifybot: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	b.Stop()
}
