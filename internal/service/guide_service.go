package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
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

const guideCatalogKey = "catalog:filters:guides"

var allowedAssetTypes = []string{"application/pdf", "image/jpeg", "image/png", "image/webp"}

// newGuideEngine 攻略目录预设。正文是 Markdown，搜索只扫标题与摘要性的 Slug。
func newGuideEngine() *filter.Engine[model.Guide] {
	return filter.MustNew(filter.Config[model.Guide]{
		SearchFields: []filter.Accessor[model.Guide, string]{
			filter.Field[model.Guide, string]("Title"),
			filter.Field[model.Guide, string]("Slug"),
		},
		Category: filter.Field[model.Guide, string]("Category"),
		Tags:     func(g model.Guide) []string { return util.SplitTags(g.Tags) },
		TagMode:  filter.TagAny,
		Booleans: []filter.BoolFilter[model.Guide]{
			{Key: "video", Label: "附带视频", Pred: func(g model.Guide) bool { return g.VideoURL != "" }},
		},
		Sorts: map[string]filter.LessFunc[model.Guide]{
			"title": func(a, b model.Guide) bool { return a.Title < b.Title },
		},
	})
}

type GuideService struct {
	Repo    *repository.GuideRepository
	Storage StorageProvider
	Redis   *redis.Client
	Cfg     *config.Config
	engine  *filter.Engine[model.Guide]
}

func NewGuideService(repo *repository.GuideRepository, storage StorageProvider, rdb *redis.Client, cfg *config.Config) *GuideService {
	return &GuideService{
		Repo:    repo,
		Storage: storage,
		Redis:   rdb,
		Cfg:     cfg,
		engine:  newGuideEngine(),
	}
}

// List 只展示已发布的攻略
func (s *GuideService) List(st filter.State, page, perPage int) ([]model.Guide, pagination.Page, error) {
	items, err := s.Repo.ListPublished()
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

func (s *GuideService) Filters(ctx context.Context) (filter.ResolvedConfig, error) {
	ttl := time.Duration(s.Cfg.Catalog.CacheTTLSeconds) * time.Second
	return cachedResolve(ctx, s.Redis, guideCatalogKey, ttl, func() (filter.ResolvedConfig, error) {
		items, err := s.Repo.ListPublished()
		if err != nil {
			return filter.ResolvedConfig{}, err
		}
		return s.engine.Resolve(items), nil
	})
}

func (s *GuideService) GetBySlug(slug string) (*model.Guide, error) {
	return s.Repo.FindBySlug(slug)
}

func (s *GuideService) GetByID(id uint) (*model.Guide, error) {
	return s.Repo.FindByID(id)
}

func (s *GuideService) Create(ctx context.Context, g *model.Guide) error {
	if g.Slug == "" {
		g.Slug = slugify(g.Title)
	}
	if err := s.Repo.Create(g); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, guideCatalogKey)
	return nil
}

func (s *GuideService) Update(ctx context.Context, g *model.Guide) error {
	if err := s.Repo.Update(g); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, guideCatalogKey)
	return nil
}

func (s *GuideService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	invalidateCatalog(ctx, s.Redis, guideCatalogKey)
	return nil
}

// UploadAsset 上传攻略附件（PDF/图片），校验真实 MIME 类型后入库
func (s *GuideService) UploadAsset(ctx context.Context, guideID uint, file *multipart.FileHeader) (string, error) {
	guide, err := s.Repo.FindByID(guideID)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType, err := util.ValidateMimeType(src, allowedAssetTypes)
	if err != nil {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	name := fmt.Sprintf("guides/%d/%s%s", guideID, util.GenerateRandomString(8), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, name, src, file.Size, contentType)
	if err != nil {
		return "", err
	}

	guide.AssetURL = url
	return url, s.Repo.Update(guide)
}

// UploadVideo 上传攻略视频，用 ffmpeg 抽取首秒缩略图一并入库
func (s *GuideService) UploadVideo(ctx context.Context, guideID uint, file *multipart.FileHeader) (string, error) {
	guide, err := s.Repo.FindByID(guideID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".mp4" && ext != ".webm" && ext != ".mov" {
		return "", util.ErrInvalidVideoExt
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 先落临时文件，ffmpeg 探测与截帧都需要本地路径
	tmp, err := os.CreateTemp("", "guide-video-*"+ext)
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.ReadFrom(src); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	if _, err := util.ProbeVideo(tmpPath); err != nil {
		return "", fmt.Errorf("invalid video file: %w", err)
	}

	base := fmt.Sprintf("guides/%d/%s", guideID, util.GenerateRandomString(8))
	videoURL, err := s.Storage.UploadFile(ctx, base+ext, tmpPath, "video/"+strings.TrimPrefix(ext, "."))
	if err != nil {
		return "", err
	}

	thumbPath := tmpPath + ".jpg"
	if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err != nil {
		zap.L().Warn("thumbnail generation failed", zap.Uint("guideId", guideID), zap.Error(err))
	} else {
		defer os.Remove(thumbPath)
		if thumbURL, err := s.Storage.UploadFile(ctx, base+".jpg", thumbPath, "image/jpeg"); err == nil {
			guide.ThumbURL = thumbURL
		}
	}

	guide.VideoURL = videoURL
	return videoURL, s.Repo.Update(guide)
}

// slugify 标题转 URL 片段，仅保留字母数字与连字符
func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
