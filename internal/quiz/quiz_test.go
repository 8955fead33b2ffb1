package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func choiceQuestion(id string, typ QuestionType, correct ...string) Question {
	correctSet := make(map[string]bool, len(correct))
	for _, c := range correct {
		correctSet[c] = true
	}
	opts := []Option{
		{ID: "a", Text: "A", IsCorrect: correctSet["a"]},
		{ID: "b", Text: "B", IsCorrect: correctSet["b"]},
		{ID: "c", Text: "C", IsCorrect: correctSet["c"]},
	}
	return Question{ID: id, Type: typ, Options: opts, Points: 10}
}

func TestCheckChoice(t *testing.T) {
	t.Run("single choice", func(t *testing.T) {
		q := choiceQuestion("q1", SingleChoice, "b")
		assert.True(t, q.CheckChoice([]string{"b"}))
		assert.False(t, q.CheckChoice([]string{"a"}))
		assert.False(t, q.CheckChoice(nil))
	})

	t.Run("multiple choice requires exact set", func(t *testing.T) {
		q := choiceQuestion("q1", MultipleChoice, "a", "c")
		assert.True(t, q.CheckChoice([]string{"a", "c"}))
		assert.True(t, q.CheckChoice([]string{"c", "a"}), "顺序无关")
		assert.False(t, q.CheckChoice([]string{"a"}), "漏选不得分")
		assert.False(t, q.CheckChoice([]string{"a", "b", "c"}), "多选不得分")
		assert.False(t, q.CheckChoice([]string{"a", "b"}))
	})
}

func TestCheckText(t *testing.T) {
	q := Question{ID: "q1", Type: TextInput, Answer: "Paris"}

	assert.True(t, q.CheckText("Paris"))
	assert.True(t, q.CheckText("  paris  "))
	assert.True(t, q.CheckText("PARIS"))
	assert.False(t, q.CheckText("Pariss"))
	assert.False(t, q.CheckText(""))
}

func TestBonusFor(t *testing.T) {
	assert.Equal(t, BonusExcellent, bonusFor(10, 30))
	assert.Equal(t, BonusGood, bonusFor(20, 30))
	assert.Equal(t, BonusNone, bonusFor(21, 30))
	assert.Equal(t, BonusNone, bonusFor(5, 0), "不限时不分档")
}

func TestCountdown(t *testing.T) {
	t.Run("nil for unlimited", func(t *testing.T) {
		c := NewCountdown(0, 10, nil, nil)
		assert.Nil(t, c)
		assert.Equal(t, 0, c.Remaining())
		assert.False(t, c.Expired())
		c.Tick(5) // nil 安全
	})

	t.Run("warning fires once when crossing threshold", func(t *testing.T) {
		warns := 0
		c := NewCountdown(30, 10, func() { warns++ }, nil)

		c.Tick(19)
		assert.Equal(t, 0, warns)
		c.Tick(1) // 剩 10
		assert.Equal(t, 1, warns)
		c.Tick(1)
		assert.Equal(t, 1, warns, "只触发一次")
	})

	t.Run("expiry fires once at zero", func(t *testing.T) {
		expired := 0
		c := NewCountdown(5, 10, nil, func() { expired++ })

		c.Tick(4)
		assert.Equal(t, 0, expired)
		c.Tick(3) // 穿过 0
		assert.Equal(t, 1, expired)
		assert.Equal(t, 0, c.Remaining())
		c.Tick(1)
		assert.Equal(t, 1, expired)
	})

	t.Run("short limit can skip the warning window", func(t *testing.T) {
		warns, expired := 0, 0
		c := NewCountdown(8, 10, func() { warns++ }, func() { expired++ })

		c.Tick(8)
		// 直接归零：不警告，只超时
		assert.Equal(t, 0, warns)
		assert.Equal(t, 1, expired)
	})
}
