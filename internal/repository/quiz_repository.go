package repository

import (
	"venus_handbook_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// ListPublished 已发布测验目录
func (r *QuizRepository) ListPublished() ([]model.Quiz, error) {
	var qs []model.Quiz
	err := r.DB.Where("is_published = ?", true).Order("updated_at desc").Find(&qs).Error
	return qs, err
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuizRepository) ListQuestions(quizID string) ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.Where("quiz_id = ?", quizID).Order("`order` asc, created_at asc").Find(&qs).Error
	return qs, err
}

// QuestionCount 题目数，列表页展示用
func (r *QuizRepository) QuestionCount(quizID string) (int64, error) {
	var n int64
	err := r.DB.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quizID).Count(&n).Error
	return n, err
}

func (r *QuizRepository) CreateQuiz(q *model.Quiz) error {
	return r.DB.Create(q).Error
}

func (r *QuizRepository) UpdateQuiz(q *model.Quiz) error {
	return r.DB.Save(q).Error
}

func (r *QuizRepository) DeleteQuiz(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}

func (r *QuizRepository) CreateQuestion(q *model.QuizQuestion) error {
	return r.DB.Create(q).Error
}

func (r *QuizRepository) UpdateQuestion(q *model.QuizQuestion) error {
	return r.DB.Save(q).Error
}

func (r *QuizRepository) DeleteQuestion(id string) error {
	return r.DB.Delete(&model.QuizQuestion{}, "id = ?", id).Error
}

// SaveResult 持久化一次答题结果
func (r *QuizRepository) SaveResult(res *model.QuizResult) error {
	return r.DB.Create(res).Error
}

// ListResultsByUser 用户的历史成绩，按完成时间倒序
func (r *QuizRepository) ListResultsByUser(userID uint, page, limit int) ([]model.QuizResult, int64, error) {
	var total int64
	query := r.DB.Model(&model.QuizResult{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rs []model.QuizResult
	offset := (page - 1) * limit
	err := query.Order("completed_at desc").Offset(offset).Limit(limit).Find(&rs).Error
	return rs, total, err
}
