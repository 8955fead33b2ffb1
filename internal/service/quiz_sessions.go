package service

import (
	"encoding/json"
	"sync"
	"time"

	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/quiz"
	"venus_handbook_backend/internal/util"
	"venus_handbook_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionEvent 会话内发生的一次性事件，由状态轮询接口带给客户端
type SessionEvent struct {
	Type    string `json:"type"` // quiz_warning, question_warning, quiz_timeout, question_timeout, completed
	Message string `json:"message,omitempty"`
}

// managedSession 服务端托管的一次答题会话
type managedSession struct {
	token      string
	userID     uint
	quizID     string
	sess       *quiz.Session
	events     []SessionEvent
	lastActive time.Time
	timedOut   bool
}

// resultStore 完成结果的持久化端口，*repository.QuizRepository 满足
type resultStore interface {
	SaveResult(res *model.QuizResult) error
}

// SessionManager 进行中答题会话的内存注册表。
// 后台 1 秒一拍驱动所有会话的倒计时，完成的会话落库后再按 TTL 清理。
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*managedSession
	store    resultStore
	ttl      time.Duration
	stop     chan struct{}
	done     chan struct{}
	saves    sync.WaitGroup
}

func NewSessionManager(store resultStore, ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*managedSession),
		store:    store,
		ttl:      ttl,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run 启动计时循环，应在独立 goroutine 中调用
func (m *SessionManager) Run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	defer close(m.done)

	for {
		select {
		case <-ticker.C:
			m.tickAll()
		case <-m.stop:
			return
		}
	}
}

// Stop 停止计时循环并等待在途的结果写入结束
func (m *SessionManager) Stop() {
	close(m.stop)
	<-m.done
	m.saves.Wait()
}

func (m *SessionManager) tickAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ms := range m.sessions {
		if ms.sess.Phase() == quiz.Answering || ms.sess.Phase() == quiz.ShowingResult {
			ms.sess.Tick(1)
		}
	}
}

// Start 为用户创建并启动一个会话，返回会话令牌。
// 同一用户对同一测验的旧会话会被顶替。
func (m *SessionManager) Start(def *quiz.Definition, userID uint) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token, ms := range m.sessions {
		if ms.userID == userID && ms.quizID == def.ID {
			delete(m.sessions, token)
			monitoring.QuizSessionsActive.Dec()
			monitoring.QuizSessionsCompleted.WithLabelValues("abandoned").Inc()
		}
	}

	token := uuid.New().String()
	ms := &managedSession{
		token:      token,
		userID:     userID,
		quizID:     def.ID,
		lastActive: time.Now(),
	}
	ms.sess = quiz.NewSession(def, token, quiz.Callbacks{
		OnQuizWarning:     func(int) { ms.events = append(ms.events, SessionEvent{Type: "quiz_warning", Message: "整卷时间即将用尽"}) },
		OnQuestionWarning: func(int) { ms.events = append(ms.events, SessionEvent{Type: "question_warning", Message: "本题时间即将用尽"}) },
		OnQuizTimeout: func() {
			ms.timedOut = true
			ms.events = append(ms.events, SessionEvent{Type: "quiz_timeout"})
		},
		OnQuestionTimeout: func(string) { ms.events = append(ms.events, SessionEvent{Type: "question_timeout"}) },
		OnComplete:        func(res *quiz.Result) { m.persistLocked(ms, res) },
	})

	if err := ms.sess.Start(); err != nil {
		return "", err
	}
	m.sessions[token] = ms
	monitoring.QuizSessionsActive.Inc()
	return token, nil
}

// With 在持锁状态下对会话执行操作；会话不存在或属主不符时返回 ErrSessionNotFound
func (m *SessionManager) With(token string, userID uint, fn func(s *quiz.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms, ok := m.sessions[token]
	if !ok || ms.userID != userID {
		return util.ErrSessionNotFound
	}
	ms.lastActive = time.Now()
	return fn(ms.sess)
}

// DrainEvents 取走并清空会话累积的事件
func (m *SessionManager) DrainEvents(token string, userID uint) ([]SessionEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms, ok := m.sessions[token]
	if !ok || ms.userID != userID {
		return nil, util.ErrSessionNotFound
	}
	events := ms.events
	ms.events = nil
	ms.lastActive = time.Now()
	return events, nil
}

// End 客户端取走结果后移除会话
func (m *SessionManager) End(token string, userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ms, ok := m.sessions[token]; ok && ms.userID == userID {
		delete(m.sessions, token)
		monitoring.QuizSessionsActive.Dec()
	}
}

// Prune 清理超过 TTL 无活动的会话，由后台调度任务周期调用
func (m *SessionManager) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	n := 0
	for token, ms := range m.sessions {
		if ms.lastActive.Before(cutoff) {
			delete(m.sessions, token)
			monitoring.QuizSessionsActive.Dec()
			if ms.sess.Phase() != quiz.Completed {
				monitoring.QuizSessionsCompleted.WithLabelValues("abandoned").Inc()
			}
			n++
		}
	}
	if n > 0 {
		zap.L().Info("stale quiz sessions pruned", zap.Int("count", n))
	}
	return n
}

// Active 当前托管的会话数
func (m *SessionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// persistLocked 会话完成回调：持锁构造结果行，数据库写入移交给独立
// goroutine，避免慢写拖住所有会话的秒拍。调用方已持有 m.mu
// （回调只会从 Start/With/tickAll 的持锁路径触发）。
func (m *SessionManager) persistLocked(ms *managedSession, res *quiz.Result) {
	ms.events = append(ms.events, SessionEvent{Type: "completed"})

	answers, err := json.Marshal(res.Answers)
	if err != nil {
		zap.L().Error("marshal quiz answers failed", zap.String("token", ms.token), zap.Error(err))
		answers = []byte("[]")
	}
	bookmarked, err := json.Marshal(res.Bookmarked)
	if err != nil {
		zap.L().Error("marshal quiz bookmarks failed", zap.String("token", ms.token), zap.Error(err))
		bookmarked = []byte("[]")
	}

	row := &model.QuizResult{
		UserID:         ms.userID,
		QuizID:         ms.quizID,
		CorrectCount:   res.CorrectCount,
		TotalQuestions: res.TotalQuestions,
		Score:          res.Score,
		Percentage:     res.Percentage,
		ElapsedSeconds: res.ElapsedSeconds,
		Answers:        answers,
		Bookmarked:     bookmarked,
		CompletedAt:    res.CompletedAt,
	}

	completion := "finished"
	if ms.timedOut {
		completion = "timeout"
	}
	monitoring.QuizSessionsCompleted.WithLabelValues(completion).Inc()

	zap.L().Info("quiz session completed",
		zap.String("quizId", ms.quizID),
		zap.Uint("userId", ms.userID),
		zap.Int("percentage", res.Percentage),
		zap.String("completion", completion))

	m.saves.Add(1)
	go func() {
		defer m.saves.Done()
		if err := m.store.SaveResult(row); err != nil {
			zap.L().Error("save quiz result failed",
				zap.String("quizId", row.QuizID),
				zap.Uint("userId", row.UserID),
				zap.Error(err))
		}
	}()
}
