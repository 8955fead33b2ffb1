package model

import (
	"encoding/json"
	"time"
)

// Quiz 测验定义
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Difficulty  string `gorm:"size:20;default:'normal'" json:"difficulty"` // easy, normal, hard
	TimeLimit   int    `gorm:"default:0" json:"timeLimit"` // 秒，0 表示不限时
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
	Tags        string `gorm:"size:500;default:''" json:"tags"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion 测验题目
// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	QuizID       string          `gorm:"index;type:varchar(36)" json:"quizId"`
	QuestionType string          `gorm:"size:50;not null" json:"questionType"` // single_choice, multiple_choice, text_input
	Content      string          `gorm:"type:text;not null" json:"content"`
	Options      json.RawMessage `gorm:"type:json" json:"options,omitempty"` // JSON: []quiz.Option
	Answer       string          `gorm:"type:text" json:"-"`                 // text_input 标准答案
	TimeLimit    int             `gorm:"default:0" json:"timeLimit"`
	Points       int             `gorm:"default:0" json:"points"`
	Explanation  string          `gorm:"type:text" json:"explanation"`
	Order        int             `gorm:"default:0" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizResult 存储用户的测验结果
type QuizResult struct {
	UUIDBase
	UserID         uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	QuizID         string          `gorm:"index;type:varchar(36)" json:"quizId"`
	CorrectCount   int             `gorm:"not null" json:"correctCount"`
	TotalQuestions int             `gorm:"not null" json:"totalQuestions"`
	Score          int             `gorm:"default:0" json:"score"`
	Percentage     int             `gorm:"default:0" json:"percentage"`
	ElapsedSeconds int             `gorm:"default:0" json:"elapsedSeconds"`
	Answers        json.RawMessage `gorm:"type:json" json:"answers"`
	Bookmarked     json.RawMessage `gorm:"type:json" json:"bookmarked,omitempty"`
	CompletedAt    time.Time       `json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
