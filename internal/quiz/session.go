package quiz

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Phase 会话所处阶段
type Phase int

const (
	NotStarted Phase = iota
	Answering
	ShowingResult
	Completed
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Answering:
		return "answering"
	case ShowingResult:
		return "showing_result"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

const (
	// LowTimeWarning 剩余时间穿过该阈值（秒）时触发一次低时警告
	LowTimeWarning = 10
	// ResultDisplaySeconds 提交后结果展示的固定停留时长，期间禁止输入
	ResultDisplaySeconds = 2
)

var (
	ErrAlreadyStarted   = errors.New("quiz session already started")
	ErrNotAnswering     = errors.New("no question is accepting input")
	ErrIncompleteAnswer = errors.New("answer does not satisfy the question's validity rule")
	ErrNoQuestions      = errors.New("quiz has no questions")
)

// Callbacks 会话的外部通知回调，均为可选
type Callbacks struct {
	OnQuizWarning     func(remaining int)
	OnQuestionWarning func(remaining int)
	OnQuizTimeout     func()
	OnQuestionTimeout func(questionID string)
	OnComplete        func(*Result)
}

// Session 单次答题会话。非并发安全，由单一持有者顺序驱动。
type Session struct {
	def     *Definition
	userKey string
	cb      Callbacks

	phase Phase
	index int

	selected map[string]bool
	text     string

	quizTimer     *Countdown
	questionTimer *Countdown
	questionLimit int

	resultDelay     int
	questionElapsed int
	totalElapsed    int

	answers   []AnswerRecord
	bookmarks map[string]bool
	result    *Result
}

// NewSession 创建处于 NotStarted 阶段的会话
func NewSession(def *Definition, userKey string, cb Callbacks) *Session {
	return &Session{
		def:       def,
		userKey:   userKey,
		cb:        cb,
		phase:     NotStarted,
		selected:  make(map[string]bool),
		bookmarks: make(map[string]bool),
	}
}

// Start 进入第一题并启动整卷倒计时
func (s *Session) Start() error {
	if s.phase != NotStarted {
		return ErrAlreadyStarted
	}
	if len(s.def.Questions) == 0 {
		return ErrNoQuestions
	}

	s.quizTimer = NewCountdown(s.def.TimeLimit, LowTimeWarning,
		func() {
			if s.cb.OnQuizWarning != nil {
				s.cb.OnQuizWarning(s.quizTimer.Remaining())
			}
		},
		func() {
			// 整卷超时：立即结束会话
			if s.cb.OnQuizTimeout != nil {
				s.cb.OnQuizTimeout()
			}
			s.complete()
		})

	s.phase = Answering
	s.index = 0
	s.enterQuestion()
	return nil
}

// enterQuestion 进入当前题：清空作答状态，启动单题倒计时
func (s *Session) enterQuestion() {
	q := s.def.Questions[s.index]

	s.selected = make(map[string]bool)
	s.text = ""
	s.questionElapsed = 0

	// 单题限时：题目自带限时优先，否则由整卷限时均摊
	limit := q.TimeLimit
	if limit == 0 && s.def.TimeLimit > 0 {
		limit = s.def.TimeLimit / len(s.def.Questions)
	}
	s.questionLimit = limit

	qid := q.ID
	s.questionTimer = NewCountdown(limit, LowTimeWarning,
		func() {
			if s.cb.OnQuestionWarning != nil {
				s.cb.OnQuestionWarning(s.questionTimer.Remaining())
			}
		},
		func() {
			// 单题超时等同于跳过：计为未答/错误并立即推进
			if s.cb.OnQuestionTimeout != nil {
				s.cb.OnQuestionTimeout(qid)
			}
			s.recordSkip()
			s.advance()
		})
}

// Tick 以 seconds 秒推进会话。整卷计时先于单题计时结算。
func (s *Session) Tick(seconds int) {
	if seconds <= 0 || s.phase == NotStarted || s.phase == Completed {
		return
	}

	s.totalElapsed += seconds
	if s.phase == Answering {
		s.questionElapsed += seconds
	}

	s.quizTimer.Tick(seconds)
	if s.phase == Completed {
		return
	}

	if s.phase == ShowingResult {
		s.resultDelay -= seconds
		if s.resultDelay <= 0 {
			s.advance()
		}
		return
	}

	s.questionTimer.Tick(seconds)
}

// CurrentQuestion 当前题目；会话未在进行中时返回 nil
func (s *Session) CurrentQuestion() *Question {
	if s.phase != Answering && s.phase != ShowingResult {
		return nil
	}
	return &s.def.Questions[s.index]
}

// Select 选择/切换一个选项。单选题替换已选项，多选题切换成员关系。
func (s *Session) Select(optionID string) error {
	if s.phase != Answering {
		return ErrNotAnswering
	}
	q := s.def.Questions[s.index]
	switch q.Type {
	case SingleChoice:
		s.selected = map[string]bool{optionID: true}
	case MultipleChoice:
		if s.selected[optionID] {
			delete(s.selected, optionID)
		} else {
			s.selected[optionID] = true
		}
	default:
		return ErrNotAnswering
	}
	return nil
}

// SetText 填写文本题答案
func (s *Session) SetText(input string) error {
	if s.phase != Answering {
		return ErrNotAnswering
	}
	if s.def.Questions[s.index].Type != TextInput {
		return ErrNotAnswering
	}
	s.text = input
	return nil
}

// CanSubmit 当前作答是否满足该题型的有效性规则：
// 单选恰一项、多选至少一项、文本去空白后非空
func (s *Session) CanSubmit() bool {
	if s.phase != Answering {
		return false
	}
	switch s.def.Questions[s.index].Type {
	case SingleChoice:
		return len(s.selected) == 1
	case MultipleChoice:
		return len(s.selected) >= 1
	case TextInput:
		return strings.TrimSpace(s.text) != ""
	default:
		return false
	}
}

// Submit 提交当前题并进入结果展示阶段，展示期满后自动推进
func (s *Session) Submit() (*AnswerRecord, error) {
	if s.phase != Answering {
		return nil, ErrNotAnswering
	}
	if !s.CanSubmit() {
		return nil, ErrIncompleteAnswer
	}

	q := s.def.Questions[s.index]
	rec := AnswerRecord{
		QuestionID:     q.ID,
		ElapsedSeconds: s.questionElapsed,
		Bonus:          bonusFor(s.questionElapsed, s.questionLimit),
	}

	switch q.Type {
	case TextInput:
		rec.Text = s.text
		rec.Correct = q.CheckText(s.text)
	default:
		rec.Selected = sortedKeys(s.selected)
		rec.Correct = q.CheckChoice(rec.Selected)
	}
	if rec.Correct {
		rec.Points = q.Points
	}

	s.answers = append(s.answers, rec)
	s.phase = ShowingResult
	s.resultDelay = ResultDisplaySeconds
	return &rec, nil
}

// Skip 跳过当前题：计为未答/错误并立即推进，不经过结果展示停留
func (s *Session) Skip() error {
	if s.phase != Answering {
		return ErrNotAnswering
	}
	s.recordSkip()
	s.advance()
	return nil
}

func (s *Session) recordSkip() {
	q := s.def.Questions[s.index]
	s.answers = append(s.answers, AnswerRecord{
		QuestionID:     q.ID,
		Skipped:        true,
		ElapsedSeconds: s.questionElapsed,
	})
}

// ToggleBookmark 切换当前题的收藏标记；不影响计分与推进
func (s *Session) ToggleBookmark() error {
	q := s.CurrentQuestion()
	if q == nil {
		return ErrNotAnswering
	}
	if s.bookmarks[q.ID] {
		delete(s.bookmarks, q.ID)
	} else {
		s.bookmarks[q.ID] = true
	}
	return nil
}

// Bookmarked 按题目顺序返回已收藏的题目 id
func (s *Session) Bookmarked() []string {
	var out []string
	for _, q := range s.def.Questions {
		if s.bookmarks[q.ID] {
			out = append(out, q.ID)
		}
	}
	return out
}

// Finish 用户确认提前交卷
func (s *Session) Finish() error {
	if s.phase != Answering && s.phase != ShowingResult {
		return ErrNotAnswering
	}
	s.complete()
	return nil
}

func (s *Session) advance() {
	s.index++
	if s.index >= len(s.def.Questions) {
		s.complete()
		return
	}
	s.phase = Answering
	s.enterQuestion()
}

func (s *Session) complete() {
	if s.phase == Completed {
		return
	}
	s.phase = Completed
	s.questionTimer = nil

	res := &Result{
		QuizID:         s.def.ID,
		UserKey:        s.userKey,
		TotalQuestions: len(s.def.Questions),
		ElapsedSeconds: s.totalElapsed,
		CompletedAt:    time.Now(),
		Answers:        s.answers,
		Bookmarked:     s.Bookmarked(),
	}
	for _, a := range s.answers {
		if a.Correct {
			res.CorrectCount++
			res.Score += a.Points
		}
	}
	if res.TotalQuestions > 0 {
		res.Percentage = res.CorrectCount * 100 / res.TotalQuestions
	}

	s.result = res
	if s.cb.OnComplete != nil {
		s.cb.OnComplete(res)
	}
}

// Phase 当前阶段
func (s *Session) Phase() Phase { return s.phase }

// CurrentIndex 当前题序（0 起）
func (s *Session) CurrentIndex() int { return s.index }

// TotalQuestions 题目总数
func (s *Session) TotalQuestions() int { return len(s.def.Questions) }

// QuizRemaining 整卷剩余秒数，0 表示不限时或已超时
func (s *Session) QuizRemaining() int { return s.quizTimer.Remaining() }

// QuestionRemaining 单题剩余秒数
func (s *Session) QuestionRemaining() int { return s.questionTimer.Remaining() }

// Result 完成后的结果；未完成时为 nil
func (s *Session) Result() *Result { return s.result }

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
