package database

import (
	"fmt"
	"log"
	"venus_handbook_backend/internal/config"
	"venus_handbook_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := logger.Warn
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate 执行全部表结构迁移，并在空库时写入基础目录数据
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Character{},
		&model.Swimsuit{},
		&model.Gacha{},
		&model.Guide{},
		&model.Mission{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizResult{},
		&model.Favorite{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	// 默认角色（空库时写入，便于本地联调）
	var count int64
	db.Model(&model.Character{}).Count(&count)
	if count == 0 {
		defaultCharacters := []model.Character{
			{Name: "かすみ", NameEn: "Kasumi", CV: "桑島法子", Hobby: "占い", Order: 1},
			{Name: "ほのか", NameEn: "Honoka", CV: "能登麻美子", Hobby: "ゲーム", Order: 2},
			{Name: "マリー・ローズ", NameEn: "Marie Rose", CV: "相沢舞", Hobby: "お菓子作り", Order: 3},
		}
		for _, c := range defaultCharacters {
			db.Create(&c)
		}
	}

	return nil
}
