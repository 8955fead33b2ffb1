// Package quiz 实现单次答题会话的状态机：题目推进、双计时器、判分、
// 收藏标记与结果汇总。倒计时由显式的 Tick 驱动，任何时钟源（真实定时器
// 或测试中的假时钟）都可以推动会话。
package quiz

import (
	"strings"
	"time"
)

// QuestionType 题目类型
type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	TextInput      QuestionType = "text_input"
)

// Option 选择题的一个选项
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"-"`
}

// Question 一道题目
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Content     string       `json:"content"`
	Options     []Option     `json:"options,omitempty"`
	Answer      string       `json:"-"` // text_input 的标准答案
	TimeLimit   int          `json:"timeLimit"` // 秒，0 表示不限时
	Points      int          `json:"points"`
	Explanation string       `json:"explanation,omitempty"`
}

// Definition 一份测验的定义
type Definition struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Difficulty string     `json:"difficulty"`
	Tags       []string   `json:"tags"`
	TimeLimit  int        `json:"timeLimit"` // 秒，0 表示不限时
	Questions  []Question `json:"questions"`
}

// correctSet 题目被标记为正确的选项 id 集合
func (q *Question) correctSet() map[string]bool {
	set := make(map[string]bool)
	for _, o := range q.Options {
		if o.IsCorrect {
			set[o.ID] = true
		}
	}
	return set
}

// CheckChoice 选择题判分：所选集合与正确集合完全相等才算对，不支持部分得分
func (q *Question) CheckChoice(selected []string) bool {
	want := q.correctSet()
	if len(selected) != len(want) {
		return false
	}
	for _, id := range selected {
		if !want[id] {
			return false
		}
	}
	return true
}

// CheckText 文本题判分：去除首尾空白并忽略大小写后精确比对，不做模糊匹配
func (q *Question) CheckText(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(q.Answer))
}

// TimeBonus 基于用时比例的奖励档位，仅用于界面反馈，不影响得分
type TimeBonus string

const (
	BonusExcellent TimeBonus = "excellent"
	BonusGood      TimeBonus = "good"
	BonusNone      TimeBonus = ""
)

// bonusFor 按已用时间与适用限时的比例分档；无限时则不分档
func bonusFor(elapsed, limit int) TimeBonus {
	if limit <= 0 {
		return BonusNone
	}
	ratio := float64(elapsed) / float64(limit)
	switch {
	case ratio <= 1.0/3:
		return BonusExcellent
	case ratio <= 2.0/3:
		return BonusGood
	default:
		return BonusNone
	}
}

// AnswerRecord 一道题的作答明细
type AnswerRecord struct {
	QuestionID     string    `json:"questionId"`
	Selected       []string  `json:"selected,omitempty"`
	Text           string    `json:"text,omitempty"`
	Correct        bool      `json:"correct"`
	Skipped        bool      `json:"skipped"`
	Points         int       `json:"points"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
	Bonus          TimeBonus `json:"bonus,omitempty"`
}

// Result 会话完成后汇总的结果，交由外部协作方持久化
type Result struct {
	QuizID         string         `json:"quizId"`
	UserKey        string         `json:"userKey"`
	TotalQuestions int            `json:"totalQuestions"`
	CorrectCount   int            `json:"correctCount"`
	Score          int            `json:"score"`
	Percentage     int            `json:"percentage"`
	ElapsedSeconds int            `json:"elapsedSeconds"`
	CompletedAt    time.Time      `json:"completedAt"`
	Answers        []AnswerRecord `json:"answers"`
	Bookmarked     []string       `json:"bookmarked,omitempty"`
}
