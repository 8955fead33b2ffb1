// 手动灌入演示数据脚本
//
// 首次部署或本地开发时执行一次，写入基础角色、示例泳装与一份演示测验。
// 已存在同名数据时跳过，不会重复插入。
//
// 用法: go run scripts/seed_catalog.go

package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"venus_handbook_backend/internal/config"
	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/pkg/database"
	"venus_handbook_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	log.Println("开始灌入演示数据...")
	seedSwimsuits(db)
	seedQuiz(db)
	log.Println("完成！")
}

func seedSwimsuits(db *gorm.DB) {
	var kasumi model.Character
	if err := db.Where("name = ?", "かすみ").First(&kasumi).Error; err != nil {
		log.Printf("跳过泳装示例：未找到基础角色 (%v)", err)
		return
	}

	release := time.Date(2023, 7, 14, 0, 0, 0, 0, time.UTC)
	suits := []model.Swimsuit{
		{
			Name: "ヴァルキリー", CharacterID: kasumi.ID, Rarity: "SSR", SuitType: "POW",
			Source: "gacha", Pow: 4200, Tec: 3100, Stm: 2800, Apl: 380,
			HasMalfunction: true, ReleaseDate: &release, Tags: "限定,周年",
		},
		{
			Name: "ホワイトセレナーデ", CharacterID: kasumi.ID, Rarity: "SR", SuitType: "TEC",
			Source: "event", Pow: 2400, Tec: 3300, Stm: 2100, Apl: 260, Tags: "活动",
		},
	}
	for _, s := range suits {
		var count int64
		db.Model(&model.Swimsuit{}).Where("name = ? AND character_id = ?", s.Name, s.CharacterID).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&s).Error; err != nil {
			log.Printf("泳装 %s 写入失败: %v", s.Name, err)
		}
	}
}

func seedQuiz(db *gorm.DB) {
	var count int64
	db.Model(&model.Quiz{}).Where("title = ?", "女天狗基础知识测验").Count(&count)
	if count > 0 {
		return
	}

	quiz := model.Quiz{
		Title:       "女天狗基础知识测验",
		Description: "考察对基础角色设定的熟悉程度",
		Difficulty:  "easy",
		TimeLimit:   120,
		IsPublished: true,
		Tags:        "入门",
	}
	if err := db.Create(&quiz).Error; err != nil {
		log.Printf("测验写入失败: %v", err)
		return
	}

	mustJSON := func(v interface{}) json.RawMessage {
		raw, _ := json.Marshal(v)
		return raw
	}

	type opt struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		IsCorrect bool   `json:"isCorrect"`
	}

	questions := []model.QuizQuestion{
		{
			QuizID:       quiz.ID,
			QuestionType: "single_choice",
			Content:      "かすみ的武器流派是？",
			Options: mustJSON([]opt{
				{ID: "a", Text: "霧幻天神流", IsCorrect: true},
				{ID: "b", Text: "天狗道"},
				{ID: "c", Text: "バイマン流"},
			}),
			Points: 10,
			Order:  1,
		},
		{
			QuizID:       quiz.ID,
			QuestionType: "multiple_choice",
			Content:      "以下哪些泳装属性属于对攻属性？",
			Options: mustJSON([]opt{
				{ID: "a", Text: "POW", IsCorrect: true},
				{ID: "b", Text: "TEC", IsCorrect: true},
				{ID: "c", Text: "APL"},
			}),
			Points: 10,
			Order:  2,
		},
		{
			QuizID:       quiz.ID,
			QuestionType: "text_input",
			Content:      "マリー・ローズ的出身国家是？（英文）",
			Answer:       "Sweden",
			TimeLimit:    30,
			Points:       20,
			Order:        3,
		},
	}
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			log.Printf("题目 %d 写入失败: %v", i+1, err)
		}
	}
}
