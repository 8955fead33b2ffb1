package service

import (
	"encoding/json"
	"testing"
	"time"

	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/quiz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResultStore 在 unblock 关闭前挂起写入，模拟慢数据库
type stubResultStore struct {
	unblock chan struct{}
	saved   chan *model.QuizResult
}

func newStubResultStore() *stubResultStore {
	return &stubResultStore{
		unblock: make(chan struct{}),
		saved:   make(chan *model.QuizResult, 1),
	}
}

func (s *stubResultStore) SaveResult(r *model.QuizResult) error {
	<-s.unblock
	s.saved <- r
	return nil
}

func oneQuestionQuiz() *quiz.Definition {
	return &quiz.Definition{
		ID:    "quiz-1",
		Title: "demo",
		Questions: []quiz.Question{{
			ID:   "q1",
			Type: quiz.SingleChoice,
			Options: []quiz.Option{
				{ID: "a", Text: "A", IsCorrect: true},
				{ID: "b", Text: "B"},
			},
			Points: 10,
		}},
	}
}

func finishSession(t *testing.T, m *SessionManager, token string, userID uint) {
	t.Helper()
	err := m.With(token, userID, func(s *quiz.Session) error {
		if err := s.Select("a"); err != nil {
			return err
		}
		if _, err := s.Submit(); err != nil {
			return err
		}
		return s.Finish()
	})
	require.NoError(t, err)
}

func TestSessionManagerPersistence(t *testing.T) {
	t.Run("slow result write does not hold the manager", func(t *testing.T) {
		store := newStubResultStore()
		m := NewSessionManager(store, time.Minute)
		go m.Run()

		token, err := m.Start(oneQuestionQuiz(), 7)
		require.NoError(t, err)

		// 完成会话；写入仍被挂起
		finishSession(t, m, token, 7)

		select {
		case <-store.saved:
			t.Fatal("result saved before store was unblocked")
		default:
		}

		// 写入挂起期间管理器必须照常服务
		assert.Equal(t, 1, m.Active())
		events, err := m.DrainEvents(token, 7)
		require.NoError(t, err)
		require.NotEmpty(t, events)
		assert.Equal(t, "completed", events[len(events)-1].Type)

		close(store.unblock)
		select {
		case row := <-store.saved:
			assert.Equal(t, "quiz-1", row.QuizID)
			assert.Equal(t, uint(7), row.UserID)
			assert.Equal(t, 1, row.CorrectCount)
			assert.Equal(t, 100, row.Percentage)
			assert.JSONEq(t, `["a"]`, extractSelected(t, row))
		case <-time.After(2 * time.Second):
			t.Fatal("result was never saved")
		}

		m.Stop()
	})

	t.Run("stop waits for pending result writes", func(t *testing.T) {
		store := newStubResultStore()
		m := NewSessionManager(store, time.Minute)
		go m.Run()

		token, err := m.Start(oneQuestionQuiz(), 9)
		require.NoError(t, err)
		finishSession(t, m, token, 9)

		stopped := make(chan struct{})
		go func() {
			m.Stop()
			close(stopped)
		}()

		select {
		case <-stopped:
			t.Fatal("Stop returned while a result write was still pending")
		case <-time.After(50 * time.Millisecond):
		}

		close(store.unblock)
		select {
		case <-stopped:
		case <-time.After(2 * time.Second):
			t.Fatal("Stop never returned")
		}
		<-store.saved
	})
}

func extractSelected(t *testing.T, row *model.QuizResult) string {
	t.Helper()
	var answers []quiz.AnswerRecord
	require.NoError(t, json.Unmarshal(row.Answers, &answers))
	require.Len(t, answers, 1)
	data, err := json.Marshal(answers[0].Selected)
	require.NoError(t, err)
	return string(data)
}
