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
)

const missionCatalogKey = "catalog:filters:missions"

// newMissionEngine 任务目录预设。Category 维度复用任务类型（daily/weekly/event/main）。
func newMissionEngine() *filter.Engine[model.Mission] {
	return filter.MustNew(filter.Config[model.Mission]{
		SearchFields: []filter.Accessor[model.Mission, string]{
			filter.Field[model.Mission, string]("Title"),
			filter.Field[model.Mission, string]("Reward"),
		},
		Category: filter.Field[model.Mission, string]("MissionType"),
		Status:   filter.Field[model.Mission, string]("Status"),
		Tags:     func(m model.Mission) []string { return util.SplitTags(m.Tags) },
		TagMode:  filter.TagAll,
		Booleans: []filter.BoolFilter[model.Mission]{
			{Key: "limited", Label: "限时任务", Pred: func(m model.Mission) bool { return m.IsLimited }},
		},
		Date: filter.Extract(func(m model.Mission) time.Time {
			if m.StartAt != nil {
				return *m.StartAt
			}
			return time.Time{}
		}),
		Sorts: map[string]filter.LessFunc[model.Mission]{
			"title": func(a, b model.Mission) bool { return a.Title < b.Title },
			"end_asc": func(a, b model.Mission) bool {
				at, bt := missionEnd(a), missionEnd(b)
				return at.Before(bt)
			},
		},
	})
}

func missionEnd(m model.Mission) time.Time {
	if m.EndAt != nil {
		return *m.EndAt
	}
	return time.Time{}
}

type MissionService struct {
	Repo   *repository.MissionRepository
	Redis  *redis.Client
	Cfg    *config.Config
	engine *filter.Engine[model.Mission]
}

func NewMissionService(repo *repository.MissionRepository, rdb *redis.Client, cfg *config.Config) *MissionService {
	return &MissionService{
		Repo:   repo,
		Redis:  rdb,
		Cfg:    cfg,
		engine: newMissionEngine(),
	}
}

func (s *MissionService) List(st filter.State, page, perPage int) ([]model.Mission, pagination.Page, error) {
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

func (s *MissionService) Filters(ctx context.Context) (filter.ResolvedConfig, error) {
	ttl := time.Duration(s.Cfg.Catalog.CacheTTLSeconds) * time.Second
	return cachedResolve(ctx, s.Redis, missionCatalogKey, ttl, func() (filter.ResolvedConfig, error) {
		items, err := s.Repo.ListAll()
		if err != nil {
			return filter.ResolvedConfig{}, err
		}
		return s.engine.Resolve(items), nil
	})
}

func (s *MissionService) GetByID(id uint) (*model.Mission, error) {
	return s.Repo.FindByID(id)
}

func (s *MissionService) Create(ctx context.Context, m *model.Mission) error {
	if err := s.Repo.Create(m); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, missionCatalogKey)
	return nil
}

func (s *MissionService) Update(ctx context.Context, m *model.Mission) error {
	if err := s.Repo.Update(m); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, missionCatalogKey)
	return nil
}

func (s *MissionService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, missionCatalogKey)
	return nil
}
