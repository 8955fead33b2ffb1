package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ImportConfig 泳装批量导入的工作簿布局。
// 列依次为：泳装名、角色名、稀有度、类型、获取途径、POW、TEC、STM、APL、可觉醒、实装日期、标签。
type ImportConfig struct {
	SheetName string
	StartRow  int // 1 起始的数据首行，默认跳过表头
}

func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName: "Sheet1",
		StartRow:  2,
	}
}

// ImportResult 一次导入的汇总
type ImportResult struct {
	TotalProcessed int      `json:"totalProcessed"`
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors,omitempty"`
}

type ImportService struct {
	SwimsuitRepo  *repository.SwimsuitRepository
	CharacterRepo *repository.CharacterRepository
	Swimsuits     *SwimsuitService
	Characters    *CharacterService
}

func NewImportService(swimsuitRepo *repository.SwimsuitRepository, characterRepo *repository.CharacterRepository, swimsuits *SwimsuitService, characters *CharacterService) *ImportService {
	return &ImportService{
		SwimsuitRepo:  swimsuitRepo,
		CharacterRepo: characterRepo,
		Swimsuits:     swimsuits,
		Characters:    characters,
	}
}

// ImportSwimsuits 从 Excel 工作簿批量导入泳装。
// 单行校验失败只记入 Errors 跳过，不中断整次导入。
func (s *ImportService) ImportSwimsuits(ctx context.Context, path string, cfg ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", cfg.SheetName, err)
	}

	characters, err := s.CharacterRepo.ListAll()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uint, len(characters))
	for _, c := range characters {
		byName[c.Name] = c.ID
		if c.NameEn != "" {
			byName[strings.ToLower(c.NameEn)] = c.ID
		}
	}

	result := &ImportResult{}
	var batch []model.Swimsuit

	for i, row := range rows {
		rowNum := i + 1
		if rowNum < cfg.StartRow {
			continue
		}
		result.TotalProcessed++

		suit, err := parseSwimsuitRow(row, byName)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		batch = append(batch, *suit)
	}

	if len(batch) > 0 {
		if err := s.SwimsuitRepo.BatchCreate(batch); err != nil {
			return nil, fmt.Errorf("batch insert failed: %w", err)
		}
		result.Created = len(batch)
		invalidateCatalog(ctx, s.Swimsuits.Redis, swimsuitCatalogKey)
	}

	zap.L().Info("swimsuit import finished",
		zap.String("path", path),
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// ImportCharacters 从 Excel 工作簿批量导入角色。
// 列依次为：角色名、英文名、CV、生日、身高(cm)、爱好、标签、展示顺序。
// 与同名已有角色重复的行跳过。
func (s *ImportService) ImportCharacters(ctx context.Context, path string, cfg ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", cfg.SheetName, err)
	}

	existing, err := s.CharacterRepo.ListAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[c.Name] = true
	}

	result := &ImportResult{}
	var batch []model.Character

	for i, row := range rows {
		rowNum := i + 1
		if rowNum < cfg.StartRow {
			continue
		}
		result.TotalProcessed++

		ch, err := parseCharacterRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if seen[ch.Name] {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: character %q already exists", rowNum, ch.Name))
			continue
		}
		seen[ch.Name] = true
		batch = append(batch, *ch)
	}

	if len(batch) > 0 {
		if err := s.CharacterRepo.BatchCreate(batch); err != nil {
			return nil, fmt.Errorf("batch insert failed: %w", err)
		}
		result.Created = len(batch)
		invalidateCatalog(ctx, s.Characters.Redis, characterCatalogKey)
	}

	zap.L().Info("character import finished",
		zap.String("path", path),
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func parseCharacterRow(row []string) (*model.Character, error) {
	cell := func(idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	name := cell(0)
	if name == "" {
		return nil, fmt.Errorf("missing character name")
	}

	ch := &model.Character{
		Name:   name,
		NameEn: cell(1),
		CV:     cell(2),
		Hobby:  cell(5),
		Tags:   cell(6),
	}

	if raw := cell(3); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid birthday %q", raw)
		}
		ch.Birthday = &t
	}

	if raw := cell(4); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid height %q", raw)
		}
		ch.Height = v
	}

	if raw := cell(7); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid display order %q", raw)
		}
		ch.Order = v
	}

	return ch, nil
}

func parseSwimsuitRow(row []string, characters map[string]uint) (*model.Swimsuit, error) {
	cell := func(idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	name := cell(0)
	if name == "" {
		return nil, fmt.Errorf("missing swimsuit name")
	}

	charName := cell(1)
	charID, ok := characters[charName]
	if !ok {
		charID, ok = characters[strings.ToLower(charName)]
	}
	if !ok {
		return nil, fmt.Errorf("unknown character %q", charName)
	}

	rarity := strings.ToUpper(cell(2))
	switch rarity {
	case "SSR", "SR", "R", "N":
	default:
		return nil, fmt.Errorf("invalid rarity %q", cell(2))
	}

	suit := &model.Swimsuit{
		Name:        name,
		CharacterID: charID,
		Rarity:      rarity,
		SuitType:    strings.ToUpper(cell(3)),
		Source:      strings.ToLower(cell(4)),
		Tags:        cell(11),
	}

	stats := []struct {
		idx int
		dst *int
	}{
		{5, &suit.Pow}, {6, &suit.Tec}, {7, &suit.Stm}, {8, &suit.Apl},
	}
	for _, st := range stats {
		raw := cell(st.idx)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid stat value %q", raw)
		}
		*st.dst = v
	}

	switch strings.ToLower(cell(9)) {
	case "1", "yes", "true", "y", "是":
		suit.HasMalfunction = true
	}

	if raw := cell(10); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid release date %q", raw)
		}
		suit.ReleaseDate = &t
	}

	return suit, nil
}
