package service

import (
	"context"
	"time"

	"venus_handbook_backend/internal/config"
	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/repository"
	"venus_handbook_backend/internal/util"
	"venus_handbook_backend/pkg/filter"
	"venus_handbook_backend/pkg/pagination"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const gachaCatalogKey = "catalog:filters:gachas"

// newGachaEngine 卡池目录预设。Status 维度（upcoming/active/ended）是卡池页的主筛选；
// 日期区间对应运营开始时间，供"本月开池"一类查询。
func newGachaEngine() *filter.Engine[model.Gacha] {
	return filter.MustNew(filter.Config[model.Gacha]{
		SearchFields: []filter.Accessor[model.Gacha, string]{
			filter.Field[model.Gacha, string]("Name"),
		},
		Type:    filter.Field[model.Gacha, string]("GachaType"),
		Status:  filter.Field[model.Gacha, string]("Status"),
		Tags:    func(g model.Gacha) []string { return util.SplitTags(g.Tags) },
		TagMode: filter.TagAny,
		Booleans: []filter.BoolFilter[model.Gacha]{
			{Key: "stepup", Label: "有阶梯池", Pred: func(g model.Gacha) bool { return g.HasStepUp }},
		},
		Date: filter.Extract(func(g model.Gacha) time.Time {
			if g.StartAt != nil {
				return *g.StartAt
			}
			return time.Time{}
		}),
		Sorts: map[string]filter.LessFunc[model.Gacha]{
			"start_desc": func(a, b model.Gacha) bool {
				at, bt := gachaStart(a), gachaStart(b)
				return at.After(bt)
			},
			"end_asc": func(a, b model.Gacha) bool {
				at, bt := gachaEnd(a), gachaEnd(b)
				return at.Before(bt)
			},
		},
	})
}

func gachaStart(g model.Gacha) time.Time {
	if g.StartAt != nil {
		return *g.StartAt
	}
	return time.Time{}
}

func gachaEnd(g model.Gacha) time.Time {
	if g.EndAt != nil {
		return *g.EndAt
	}
	return time.Time{}
}

type GachaService struct {
	Repo   *repository.GachaRepository
	Redis  *redis.Client
	Cfg    *config.Config
	engine *filter.Engine[model.Gacha]
}

func NewGachaService(repo *repository.GachaRepository, rdb *redis.Client, cfg *config.Config) *GachaService {
	return &GachaService{
		Repo:   repo,
		Redis:  rdb,
		Cfg:    cfg,
		engine: newGachaEngine(),
	}
}

func (s *GachaService) List(st filter.State, page, perPage int) ([]model.Gacha, pagination.Page, error) {
	items, err := s.Repo.ListAll()
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

func (s *GachaService) Filters(ctx context.Context) (filter.ResolvedConfig, error) {
	ttl := time.Duration(s.Cfg.Catalog.CacheTTLSeconds) * time.Second
	return cachedResolve(ctx, s.Redis, gachaCatalogKey, ttl, func() (filter.ResolvedConfig, error) {
		items, err := s.Repo.ListAll()
		if err != nil {
			return filter.ResolvedConfig{}, err
		}
		return s.engine.Resolve(items), nil
	})
}

func (s *GachaService) GetByID(id uint) (*model.Gacha, error) {
	return s.Repo.FindByID(id)
}

func (s *GachaService) Create(ctx context.Context, g *model.Gacha) error {
	g.Status = statusForWindow(g, time.Now())
	if err := s.Repo.Create(g); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, gachaCatalogKey)
	return nil
}

func (s *GachaService) Update(ctx context.Context, g *model.Gacha) error {
	g.Status = statusForWindow(g, time.Now())
	if err := s.Repo.Update(g); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, gachaCatalogKey)
	return nil
}

func (s *GachaService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, gachaCatalogKey)
	return nil
}

// RefreshStatuses 按运营窗口批量翻转卡池状态，由后台调度任务周期触发
func (s *GachaService) RefreshStatuses(ctx context.Context) error {
	changed, err := s.Repo.RefreshStatuses(time.Now())
	if err != nil {
		return err
	}
	if changed > 0 {
		zap.L().Info("gacha statuses refreshed", zap.Int64("changed", changed))
		invalidateCatalog(ctx, s.Redis, gachaCatalogKey)
	}
	return nil
}

// statusForWindow 依据当前时间推导卡池状态；无时间窗口的卡池视为 upcoming
func statusForWindow(g *model.Gacha, now time.Time) string {
	if g.StartAt == nil || now.Before(*g.StartAt) {
		return model.GachaUpcoming
	}
	if g.EndAt != nil && now.After(*g.EndAt) {
		return model.GachaEnded
	}
	return model.GachaActive
}
