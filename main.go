// @title Venus Handbook 后端 API
// @version 1.0
// @description DOAXVV 风格手游图鉴站的后端服务：角色/泳装/卡池/任务图鉴、攻略与答题测验。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"venus_handbook_backend/internal/app"
	"venus_handbook_backend/internal/config"
	"venus_handbook_backend/pkg/configwatcher"
	"venus_handbook_backend/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 监听配置文件热更新
	configwatcher.WatchConfig("configs/config.yaml", func(updated *config.Config) {
		for _, cb := range application.ConfigCallbacks() {
			cb(updated)
		}
	})

	application.Run()
}
