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

const swimsuitCatalogKey = "catalog:filters:swimsuits"

// newSwimsuitEngine 泳装目录的筛选预设。
// 搜索覆盖泳装名与所属角色名；四维属性各暴露一个区间滑块。
func newSwimsuitEngine() *filter.Engine[model.Swimsuit] {
	stat := func(get func(model.Swimsuit) int) filter.Accessor[model.Swimsuit, float64] {
		return filter.Extract(func(s model.Swimsuit) float64 { return float64(get(s)) })
	}
	return filter.MustNew(filter.Config[model.Swimsuit]{
		SearchFields: []filter.Accessor[model.Swimsuit, string]{
			filter.Field[model.Swimsuit, string]("Name"),
			filter.Extract(func(s model.Swimsuit) string {
				if s.Character != nil {
					return s.Character.Name
				}
				return ""
			}),
		},
		Category: filter.Field[model.Swimsuit, string]("Source"),
		Rarity:   filter.Field[model.Swimsuit, string]("Rarity"),
		Type:     filter.Field[model.Swimsuit, string]("SuitType"),
		Tags:     func(s model.Swimsuit) []string { return util.SplitTags(s.Tags) },
		TagMode:  filter.TagAny,
		Ranges: []filter.RangeFilter[model.Swimsuit]{
			{Key: "pow", Label: "POW", Min: 0, Max: 8000, Step: 100, Value: stat(func(s model.Swimsuit) int { return s.Pow })},
			{Key: "tec", Label: "TEC", Min: 0, Max: 8000, Step: 100, Value: stat(func(s model.Swimsuit) int { return s.Tec })},
			{Key: "stm", Label: "STM", Min: 0, Max: 8000, Step: 100, Value: stat(func(s model.Swimsuit) int { return s.Stm })},
			{Key: "apl", Label: "APL", Min: 0, Max: 8000, Step: 100, Value: stat(func(s model.Swimsuit) int { return s.Apl })},
		},
		Booleans: []filter.BoolFilter[model.Swimsuit]{
			{Key: "malfunction", Label: "可觉醒", Pred: func(s model.Swimsuit) bool { return s.HasMalfunction }},
		},
		Date: filter.Extract(func(s model.Swimsuit) time.Time {
			if s.ReleaseDate != nil {
				return *s.ReleaseDate
			}
			return time.Time{}
		}),
		Sorts: map[string]filter.LessFunc[model.Swimsuit]{
			"name":       func(a, b model.Swimsuit) bool { return strings.Compare(a.Name, b.Name) < 0 },
			"rarity":     func(a, b model.Swimsuit) bool { return rarityRank(a.Rarity) < rarityRank(b.Rarity) },
			"pow_desc":   func(a, b model.Swimsuit) bool { return a.Pow > b.Pow },
			"tec_desc":   func(a, b model.Swimsuit) bool { return a.Tec > b.Tec },
			"stm_desc":   func(a, b model.Swimsuit) bool { return a.Stm > b.Stm },
			"total_desc": func(a, b model.Swimsuit) bool { return totalStats(a) > totalStats(b) },
		},
	})
}

// rarityRank SSR 在前
func rarityRank(r string) int {
	switch r {
	case "SSR":
		return 0
	case "SR":
		return 1
	case "R":
		return 2
	default:
		return 3
	}
}

func totalStats(s model.Swimsuit) int {
	return s.Pow + s.Tec + s.Stm + s.Apl
}

type SwimsuitService struct {
	Repo   *repository.SwimsuitRepository
	Redis  *redis.Client
	Cfg    *config.Config
	engine *filter.Engine[model.Swimsuit]
}

func NewSwimsuitService(repo *repository.SwimsuitRepository, rdb *redis.Client, cfg *config.Config) *SwimsuitService {
	return &SwimsuitService{
		Repo:   repo,
		Redis:  rdb,
		Cfg:    cfg,
		engine: newSwimsuitEngine(),
	}
}

// List 全量取回后在内存中过滤、排序、分页
func (s *SwimsuitService) List(st filter.State, page, perPage int) ([]model.Swimsuit, pagination.Page, error) {
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

// Filters 当前数据集可用的筛选项，带 Redis 缓存
func (s *SwimsuitService) Filters(ctx context.Context) (filter.ResolvedConfig, error) {
	ttl := time.Duration(s.Cfg.Catalog.CacheTTLSeconds) * time.Second
	return cachedResolve(ctx, s.Redis, swimsuitCatalogKey, ttl, func() (filter.ResolvedConfig, error) {
		items, err := s.Repo.ListAll()
		if err != nil {
			return filter.ResolvedConfig{}, err
		}
		return s.engine.Resolve(items), nil
	})
}

func (s *SwimsuitService) GetByID(id uint) (*model.Swimsuit, error) {
	return s.Repo.FindByID(id)
}

func (s *SwimsuitService) ListByCharacter(characterID uint) ([]model.Swimsuit, error) {
	return s.Repo.ListByCharacter(characterID)
}

func (s *SwimsuitService) Create(ctx context.Context, suit *model.Swimsuit) error {
	if err := s.Repo.Create(suit); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, swimsuitCatalogKey)
	return nil
}

func (s *SwimsuitService) Update(ctx context.Context, suit *model.Swimsuit) error {
	if err := s.Repo.Update(suit); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, swimsuitCatalogKey)
	return nil
}

func (s *SwimsuitService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, swimsuitCatalogKey)
	return nil
}
