package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"venus_handbook_backend/internal/config"
	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/quiz"
	"venus_handbook_backend/internal/repository"
	"venus_handbook_backend/internal/util"
	"venus_handbook_backend/pkg/filter"
	"venus_handbook_backend/pkg/pagination"

	"github.com/go-redis/redis/v8"
)

const quizCatalogKey = "catalog:filters:quizzes"

// newQuizEngine 测验列表预设。难度复用 Category 维度。
func newQuizEngine() *filter.Engine[model.Quiz] {
	return filter.MustNew(filter.Config[model.Quiz]{
		SearchFields: []filter.Accessor[model.Quiz, string]{
			filter.Field[model.Quiz, string]("Title"),
			filter.Field[model.Quiz, string]("Description"),
		},
		Category: filter.Field[model.Quiz, string]("Difficulty"),
		Tags:     func(q model.Quiz) []string { return util.SplitTags(q.Tags) },
		TagMode:  filter.TagAny,
		Booleans: []filter.BoolFilter[model.Quiz]{
			{Key: "timed", Label: "限时测验", Pred: func(q model.Quiz) bool { return q.TimeLimit > 0 }},
		},
		Sorts: map[string]filter.LessFunc[model.Quiz]{
			"title": func(a, b model.Quiz) bool { return a.Title < b.Title },
		},
	})
}

// optionRow 题目选项的存储形态，含答案标记；对客户端序列化时由 quiz.Option 隐去
type optionRow struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuizService struct {
	Repo     *repository.QuizRepository
	Sessions *SessionManager
	Redis    *redis.Client
	Cfg      *config.Config
	engine   *filter.Engine[model.Quiz]
}

func NewQuizService(repo *repository.QuizRepository, sessions *SessionManager, rdb *redis.Client, cfg *config.Config) *QuizService {
	return &QuizService{
		Repo:     repo,
		Sessions: sessions,
		Redis:    rdb,
		Cfg:      cfg,
		engine:   newQuizEngine(),
	}
}

func (s *QuizService) List(st filter.State, page, perPage int) ([]model.Quiz, pagination.Page, error) {
	items, err := s.Repo.ListPublished()
	if err != nil {
		return nil, pagination.Page{}, err
	}
	filtered := s.engine.Apply(items, st)
	if perPage <= 0 {
		perPage = s.Cfg.Catalog.ItemsPerPage
	}
	pg := pagination.Derive(len(filtered), perPage, page)
	return filtered, pg, nil
}

func (s *QuizService) Filters(ctx context.Context) (filter.ResolvedConfig, error) {
	ttl := time.Duration(s.Cfg.Catalog.CacheTTLSeconds) * time.Second
	return cachedResolve(ctx, s.Redis, quizCatalogKey, ttl, func() (filter.ResolvedConfig, error) {
		items, err := s.Repo.ListPublished()
		if err != nil {
			return filter.ResolvedConfig{}, err
		}
		return s.engine.Resolve(items), nil
	})
}

// BuildDefinition 将测验及其题目装配为会话可执行的定义
func (s *QuizService) BuildDefinition(quizID string) (*quiz.Definition, error) {
	q, err := s.Repo.FindByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if !q.IsPublished {
		return nil, util.ErrQuizNotPublished
	}

	rows, err := s.Repo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, 0, len(rows))
	for _, row := range rows {
		question := quiz.Question{
			ID:          row.ID,
			Type:        quiz.QuestionType(row.QuestionType),
			Content:     row.Content,
			Answer:      row.Answer,
			TimeLimit:   row.TimeLimit,
			Points:      row.Points,
			Explanation: row.Explanation,
		}
		if len(row.Options) > 0 {
			var opts []optionRow
			if err := json.Unmarshal(row.Options, &opts); err != nil {
				return nil, fmt.Errorf("question %s has malformed options: %w", row.ID, err)
			}
			for _, o := range opts {
				question.Options = append(question.Options, quiz.Option{
					ID:        o.ID,
					Text:      o.Text,
					IsCorrect: o.IsCorrect,
				})
			}
		}
		questions = append(questions, question)
	}

	return &quiz.Definition{
		ID:         q.ID,
		Title:      q.Title,
		Difficulty: q.Difficulty,
		Tags:       util.SplitTags(q.Tags),
		TimeLimit:  q.TimeLimit,
		Questions:  questions,
	}, nil
}

// StartSession 为用户启动一次答题会话
func (s *QuizService) StartSession(quizID string, userID uint) (string, *quiz.Definition, error) {
	def, err := s.BuildDefinition(quizID)
	if err != nil {
		return "", nil, err
	}
	token, err := s.Sessions.Start(def, userID)
	if err != nil {
		return "", nil, err
	}
	return token, def, nil
}

func (s *QuizService) ListResults(userID uint, page, limit int) ([]model.QuizResult, int64, error) {
	return s.Repo.ListResultsByUser(userID, page, limit)
}

// --- 后台管理 ---

func (s *QuizService) CreateQuiz(ctx context.Context, q *model.Quiz) error {
	if err := s.Repo.CreateQuiz(q); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, quizCatalogKey)
	return nil
}

func (s *QuizService) UpdateQuiz(ctx context.Context, q *model.Quiz) error {
	if err := s.Repo.UpdateQuiz(q); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, quizCatalogKey)
	return nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	if err := s.Repo.DeleteQuiz(id); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, quizCatalogKey)
	return nil
}

func (s *QuizService) ListQuestions(quizID string) ([]model.QuizQuestion, error) {
	return s.Repo.ListQuestions(quizID)
}

func (s *QuizService) CreateQuestion(q *model.QuizQuestion) error {
	return s.Repo.CreateQuestion(q)
}

func (s *QuizService) UpdateQuestion(q *model.QuizQuestion) error {
	return s.Repo.UpdateQuestion(q)
}

func (s *QuizService) DeleteQuestion(id string) error {
	return s.Repo.DeleteQuestion(id)
}
