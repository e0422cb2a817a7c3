// 手动清理超时未提交的测验作答
//
// 该功能已集成到主应用的后台定时任务中（间隔见 football_iq.sweep_interval_minutes）。
// 此脚本仅用于手动触发，例如服务长时间停机之后。
//
// 用法: go run scripts/sweep_abandoned.go [-ttl 24h]

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"gridiron_backend/internal/config"
	"gridiron_backend/internal/repository"
	"gridiron_backend/internal/service"
	"gridiron_backend/pkg/database"
	"gridiron_backend/pkg/logger"
)

func main() {
	ttl := flag.Duration("ttl", 0, "超过该时长仍未提交的作答视为放弃，默认取配置 attempt_ttl_hours")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	if *ttl <= 0 {
		*ttl = cfg.FootballIQ.AttemptTTL()
	}

	iq := service.NewFootballIQService(
		repository.NewQuizRepository(db),
		repository.NewQuizAttemptRepository(db),
		repository.NewIQProgressRepository(db),
		nil,
		db,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Printf("手动清理超过 %s 未提交的作答...", *ttl)
	n, err := iq.SweepAbandoned(ctx, *ttl)
	if err != nil {
		log.Fatalf("清理失败: %v", err)
	}
	log.Printf("完成！共标记 %d 条", n)
}
