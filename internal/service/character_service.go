package service

import (
	"context"
	"strings"
	"time"

	"venus_handbook_backend/internal/config"
	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/repository"
	"venus_handbook_backend/internal/util"
	"venus_handbook_backend/pkg/filter"
	"venus_handbook_backend/pkg/pagination"

	"github.com/go-redis/redis/v8"
)

const characterCatalogKey = "catalog:filters:characters"

// newCharacterEngine 角色目录的筛选预设。角色没有稀有度与属性区间，
// 只按姓名/CV 搜索、标签与生日月份筛选。
func newCharacterEngine() *filter.Engine[model.Character] {
	return filter.MustNew(filter.Config[model.Character]{
		SearchFields: []filter.Accessor[model.Character, string]{
			filter.Field[model.Character, string]("Name"),
			filter.Field[model.Character, string]("NameEn"),
			filter.Field[model.Character, string]("CV"),
		},
		Tags:    func(c model.Character) []string { return util.SplitTags(c.Tags) },
		TagMode: filter.TagAny,
		Ranges: []filter.RangeFilter[model.Character]{
			{Key: "height", Label: "身高", Min: 140, Max: 180, Step: 1, Value: filter.Extract(func(c model.Character) float64 { return float64(c.Height) })},
		},
		Date: filter.Extract(func(c model.Character) time.Time {
			if c.Birthday != nil {
				return *c.Birthday
			}
			return time.Time{}
		}),
		Sorts: map[string]filter.LessFunc[model.Character]{
			"name":    func(a, b model.Character) bool { return strings.Compare(a.NameEn, b.NameEn) < 0 },
			"default": func(a, b model.Character) bool { return a.Order < b.Order },
		},
	})
}

type CharacterService struct {
	Repo   *repository.CharacterRepository
	Redis  *redis.Client
	Cfg    *config.Config
	engine *filter.Engine[model.Character]
}

func NewCharacterService(repo *repository.CharacterRepository, rdb *redis.Client, cfg *config.Config) *CharacterService {
	return &CharacterService{
		Repo:   repo,
		Redis:  rdb,
		Cfg:    cfg,
		engine: newCharacterEngine(),
	}
}

func (s *CharacterService) List(st filter.State, page, perPage int) ([]model.Character, pagination.Page, error) {
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

func (s *CharacterService) Filters(ctx context.Context) (filter.ResolvedConfig, error) {
	ttl := time.Duration(s.Cfg.Catalog.CacheTTLSeconds) * time.Second
	return cachedResolve(ctx, s.Redis, characterCatalogKey, ttl, func() (filter.ResolvedConfig, error) {
		items, err := s.Repo.ListAll()
		if err != nil {
			return filter.ResolvedConfig{}, err
		}
		return s.engine.Resolve(items), nil
	})
}

func (s *CharacterService) GetByID(id uint) (*model.Character, error) {
	return s.Repo.FindByID(id)
}

func (s *CharacterService) Create(ctx context.Context, c *model.Character) error {
	if err := s.Repo.Create(c); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, characterCatalogKey)
	return nil
}

func (s *CharacterService) Update(ctx context.Context, c *model.Character) error {
	if err := s.Repo.Update(c); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, characterCatalogKey)
	return nil
}

func (s *CharacterService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, characterCatalogKey)
	return nil
}
