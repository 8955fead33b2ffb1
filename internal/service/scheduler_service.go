package service

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Scheduler 后台周期任务：卡池状态刷新与过期会话清理
type Scheduler struct {
	scheduler *gocron.Scheduler
	gachas    *GachaService
	sessions  *SessionManager
}

func NewScheduler(gachas *GachaService, sessions *SessionManager) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		gachas:    gachas,
		sessions:  sessions,
	}
}

// Start 注册任务并异步启动
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Minute().Do(s.refreshGachaStatuses)
	s.scheduler.Every(5).Minutes().Do(s.pruneSessions)
	s.scheduler.StartAsync()
	zap.L().Info("background scheduler started")
}

// Stop 停止所有周期任务
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) refreshGachaStatuses() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.gachas.RefreshStatuses(ctx); err != nil {
		zap.L().Error("gacha status refresh failed", zap.Error(err))
	}
}

func (s *Scheduler) pruneSessions() {
	s.sessions.Prune()
}
