package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeQuestionQuiz(quizLimit int) *Definition {
	return &Definition{
		ID:        "quiz-1",
		Title:     "demo",
		TimeLimit: quizLimit,
		Questions: []Question{
			choiceQuestion("q1", SingleChoice, "a"),
			choiceQuestion("q2", MultipleChoice, "a", "b"),
			{ID: "q3", Type: TextInput, Answer: "Sweden", Points: 20},
		},
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Run("start enters first question", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{})
		assert.Equal(t, NotStarted, s.Phase())
		assert.Nil(t, s.CurrentQuestion())

		require.NoError(t, s.Start())
		assert.Equal(t, Answering, s.Phase())
		assert.Equal(t, 0, s.CurrentIndex())
		assert.Equal(t, "q1", s.CurrentQuestion().ID)

		assert.ErrorIs(t, s.Start(), ErrAlreadyStarted)
	})

	t.Run("empty quiz cannot start", func(t *testing.T) {
		s := NewSession(&Definition{ID: "empty"}, "u1", Callbacks{})
		assert.ErrorIs(t, s.Start(), ErrNoQuestions)
	})

	t.Run("one correct of three gives 33 percent", func(t *testing.T) {
		var completed *Result
		s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{
			OnComplete: func(r *Result) { completed = r },
		})
		require.NoError(t, s.Start())

		// q1 答对
		require.NoError(t, s.Select("a"))
		rec, err := s.Submit()
		require.NoError(t, err)
		assert.True(t, rec.Correct)
		assert.Equal(t, 10, rec.Points)

		// 结果展示期满后推进
		assert.Equal(t, ShowingResult, s.Phase())
		s.Tick(ResultDisplaySeconds)
		assert.Equal(t, Answering, s.Phase())
		assert.Equal(t, "q2", s.CurrentQuestion().ID)

		// q2 漏选答错
		require.NoError(t, s.Select("a"))
		rec, err = s.Submit()
		require.NoError(t, err)
		assert.False(t, rec.Correct)
		s.Tick(ResultDisplaySeconds)

		// q3 跳过
		require.NoError(t, s.Skip())

		assert.Equal(t, Completed, s.Phase())
		require.NotNil(t, completed)
		assert.Equal(t, 3, completed.TotalQuestions)
		assert.Equal(t, 1, completed.CorrectCount)
		assert.Equal(t, 10, completed.Score)
		assert.Equal(t, 33, completed.Percentage, "整数截断，不四舍五入")
		assert.Same(t, completed, s.Result())
	})

	t.Run("skip advances without result display", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{})
		require.NoError(t, s.Start())

		require.NoError(t, s.Skip())
		assert.Equal(t, Answering, s.Phase())
		assert.Equal(t, 1, s.CurrentIndex())
	})

	t.Run("finish early completes with remaining unanswered", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{})
		require.NoError(t, s.Start())

		require.NoError(t, s.Select("a"))
		_, err := s.Submit()
		require.NoError(t, err)

		require.NoError(t, s.Finish())
		assert.Equal(t, Completed, s.Phase())

		res := s.Result()
		require.NotNil(t, res)
		assert.Equal(t, 1, res.CorrectCount)
		assert.Equal(t, 33, res.Percentage)

		assert.ErrorIs(t, s.Finish(), ErrNotAnswering)
	})
}

func TestSessionInput(t *testing.T) {
	t.Run("single choice replaces selection", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{})
		require.NoError(t, s.Start())

		require.NoError(t, s.Select("a"))
		require.NoError(t, s.Select("b"))
		rec, err := s.Submit()
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, rec.Selected)
	})

	t.Run("multiple choice toggles membership", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{})
		require.NoError(t, s.Start())
		require.NoError(t, s.Skip()) // 到 q2

		require.NoError(t, s.Select("a"))
		require.NoError(t, s.Select("b"))
		require.NoError(t, s.Select("b")) // 取消 b
		require.NoError(t, s.Select("b")) // 再选 b

		rec, err := s.Submit()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, rec.Selected)
		assert.True(t, rec.Correct)
	})

	t.Run("submit validity rules", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{})
		require.NoError(t, s.Start())

		// 单选未选
		assert.False(t, s.CanSubmit())
		_, err := s.Submit()
		assert.ErrorIs(t, err, ErrIncompleteAnswer)

		require.NoError(t, s.Skip())
		require.NoError(t, s.Skip()) // 到 q3 文本题

		require.NoError(t, s.SetText("   "))
		assert.False(t, s.CanSubmit(), "纯空白不可提交")
		require.NoError(t, s.SetText(" sweden "))
		assert.True(t, s.CanSubmit())

		rec, err := s.Submit()
		require.NoError(t, err)
		assert.True(t, rec.Correct, "去空白且忽略大小写")
	})

	t.Run("input rejected outside answering phase", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{})
		require.NoError(t, s.Start())
		require.NoError(t, s.Select("a"))
		_, err := s.Submit()
		require.NoError(t, err)

		// ShowingResult 期间禁止输入
		assert.ErrorIs(t, s.Select("b"), ErrNotAnswering)
		_, err = s.Submit()
		assert.ErrorIs(t, err, ErrNotAnswering)
		assert.ErrorIs(t, s.Skip(), ErrNotAnswering)
	})

	t.Run("text input on choice question rejected", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{})
		require.NoError(t, s.Start())
		assert.ErrorIs(t, s.SetText("hi"), ErrNotAnswering)
	})
}

func TestSessionBookmarks(t *testing.T) {
	s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{})
	require.NoError(t, s.Start())

	require.NoError(t, s.ToggleBookmark()) // q1
	require.NoError(t, s.Skip())
	require.NoError(t, s.Skip())
	require.NoError(t, s.ToggleBookmark()) // q3
	assert.Equal(t, []string{"q1", "q3"}, s.Bookmarked())

	require.NoError(t, s.ToggleBookmark()) // 取消 q3
	assert.Equal(t, []string{"q1"}, s.Bookmarked())

	require.NoError(t, s.Skip())
	res := s.Result()
	require.NotNil(t, res)
	assert.Equal(t, []string{"q1"}, res.Bookmarked)
}

func TestSessionTimers(t *testing.T) {
	t.Run("per-question limit derived from quiz limit", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(90), "u1", Callbacks{})
		require.NoError(t, s.Start())

		assert.Equal(t, 90, s.QuizRemaining())
		assert.Equal(t, 30, s.QuestionRemaining(), "90 秒均摊到 3 题")
	})

	t.Run("question timeout records skip and advances", func(t *testing.T) {
		var timedOut []string
		s := NewSession(threeQuestionQuiz(90), "u1", Callbacks{
			OnQuestionTimeout: func(id string) { timedOut = append(timedOut, id) },
		})
		require.NoError(t, s.Start())

		for i := 0; i < 30; i++ {
			s.Tick(1)
		}
		assert.Equal(t, []string{"q1"}, timedOut)
		assert.Equal(t, Answering, s.Phase())
		assert.Equal(t, 1, s.CurrentIndex())
		assert.Equal(t, 30, s.QuestionRemaining(), "新题计时重置")
	})

	t.Run("question warning fires once", func(t *testing.T) {
		warns := 0
		s := NewSession(threeQuestionQuiz(90), "u1", Callbacks{
			OnQuestionWarning: func(int) { warns++ },
		})
		require.NoError(t, s.Start())

		for i := 0; i < 25; i++ {
			s.Tick(1)
		}
		assert.Equal(t, 1, warns)
		assert.Equal(t, 5, s.QuestionRemaining())
	})

	t.Run("quiz timeout completes the session", func(t *testing.T) {
		quizTimedOut := false
		var completed *Result
		s := NewSession(threeQuestionQuiz(90), "u1", Callbacks{
			OnQuizTimeout: func() { quizTimedOut = true },
			OnComplete:    func(r *Result) { completed = r },
		})
		require.NoError(t, s.Start())

		s.Tick(90)
		assert.True(t, quizTimedOut)
		assert.Equal(t, Completed, s.Phase())
		require.NotNil(t, completed)
		assert.Equal(t, 90, completed.ElapsedSeconds)
	})

	t.Run("question time limit takes precedence over derived", func(t *testing.T) {
		def := threeQuestionQuiz(90)
		def.Questions[0].TimeLimit = 12
		s := NewSession(def, "u1", Callbacks{})
		require.NoError(t, s.Start())

		assert.Equal(t, 12, s.QuestionRemaining())
	})

	t.Run("unlimited quiz has no running timers", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(0), "u1", Callbacks{})
		require.NoError(t, s.Start())

		assert.Equal(t, 0, s.QuizRemaining())
		assert.Equal(t, 0, s.QuestionRemaining())
		s.Tick(3600)
		assert.Equal(t, Answering, s.Phase(), "不限时不会超时")
	})

	t.Run("elapsed seconds tracked per answer", func(t *testing.T) {
		s := NewSession(threeQuestionQuiz(90), "u1", Callbacks{})
		require.NoError(t, s.Start())

		s.Tick(7)
		require.NoError(t, s.Select("a"))
		rec, err := s.Submit()
		require.NoError(t, err)
		assert.Equal(t, 7, rec.ElapsedSeconds)
		assert.Equal(t, BonusExcellent, rec.Bonus, "7/30 在前三分之一")
	})
}
