package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/timeline"
)

const planCacheTTL = 24 * time.Hour

// PlanService is the date-keyed store of timed blocks. A Redis client, when
// present, mirrors the last saved state per (user, date) the way the web
// client mirrors plans into local storage; the database stays the source
// of truth.
type PlanService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewPlanService(db *gorm.DB, rdb *redis.Client) *PlanService {
	return &PlanService{db: db, rdb: rdb}
}

// PlanBlockInput is one block in a save request. A missing or unknown ID
// means insert; the server assigns the id.
type PlanBlockInput struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Color         string    `json:"color"`
	ColorPreset   string    `json:"color_preset"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	IngredientIDs []string  `json:"ingredient_ids"`
}

// truncate limits s to n characters, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func (in *PlanBlockInput) sanitize() error {
	if in.StartAt.IsZero() || in.EndAt.IsZero() {
		return validationErr("block is missing start or end time")
	}
	if !in.EndAt.After(in.StartAt) {
		return validationErr("block end must be after start")
	}
	in.Title = truncate(in.Title, 60)
	in.Description = truncate(in.Description, 500)
	return nil
}

func planCacheKey(userID uuid.UUID, date string) string {
	return "plan:" + userID.String() + ":" + date
}

// GetOrCreatePlan returns the plan for (user, date), creating an empty row
// when none exists yet.
func (s *PlanService) GetOrCreatePlan(ctx context.Context, userID uuid.UUID, date string) (*models.Plan, error) {
	if plan := s.cachedPlan(ctx, userID, date); plan != nil {
		return plan, nil
	}
	var plan models.Plan
	err := s.db.Preload("Blocks").Where("user_id = ? AND date = ?", userID, date).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		plan = models.Plan{ID: uuid.New(), UserID: userID, Date: date}
		if err := s.db.Create(&plan).Error; err != nil {
			return nil, err
		}
		return &plan, nil
	}
	if err != nil {
		return nil, err
	}
	sortBlocks(plan.Blocks)
	return &plan, nil
}

// GetPlanStrict never creates. When no plan exists it returns an empty
// in-memory plan that is not persisted.
func (s *PlanService) GetPlanStrict(ctx context.Context, userID uuid.UUID, date string) (*models.Plan, error) {
	if plan := s.cachedPlan(ctx, userID, date); plan != nil {
		return plan, nil
	}
	var plan models.Plan
	err := s.db.Preload("Blocks").Where("user_id = ? AND date = ?", userID, date).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Plan{UserID: userID, Date: date}, nil
	}
	if err != nil {
		return nil, err
	}
	sortBlocks(plan.Blocks)
	return &plan, nil
}

// SavePlan replaces the plan's block set by diffing incoming ids against
// stored ones: removed blocks are deleted, matched ones updated, new ones
// inserted with server-assigned ids. The whole save is transactional; a
// malformed block rejects the entire request. When snapshotDate is given
// the saved state is also upserted into the per-day snapshot table.
func (s *PlanService) SavePlan(ctx context.Context, userID uuid.UUID, date string, blocks []PlanBlockInput, dailyAim string, dailyIngredientIDs []string, snapshotDate string) (*models.Plan, error) {
	for i := range blocks {
		if err := blocks[i].sanitize(); err != nil {
			return nil, err
		}
	}

	var saved *models.Plan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var plan models.Plan
		err := tx.Where("user_id = ? AND date = ?", userID, date).First(&plan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			plan = models.Plan{ID: uuid.New(), UserID: userID, Date: date}
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var existing []models.PlanBlock
		if err := tx.Where("plan_id = ?", plan.ID).Find(&existing).Error; err != nil {
			return err
		}
		current := make(map[uuid.UUID]models.PlanBlock, len(existing))
		for _, b := range existing {
			current[b.ID] = b
		}

		incoming := make(map[uuid.UUID]bool, len(blocks))
		result := make([]models.PlanBlock, 0, len(blocks))
		for _, in := range blocks {
			id, err := uuid.Parse(in.ID)
			if stored, ok := current[id]; err == nil && ok {
				incoming[id] = true
				stored.Title = in.Title
				stored.Description = in.Description
				stored.Color = in.Color
				stored.ColorPreset = in.ColorPreset
				stored.StartAt = in.StartAt
				stored.EndAt = in.EndAt
				stored.IngredientIDs = in.IngredientIDs
				if err := tx.Save(&stored).Error; err != nil {
					return err
				}
				result = append(result, stored)
				continue
			}
			block := models.PlanBlock{
				ID:            uuid.New(),
				PlanID:        plan.ID,
				Title:         in.Title,
				Description:   in.Description,
				Color:         in.Color,
				ColorPreset:   in.ColorPreset,
				StartAt:       in.StartAt,
				EndAt:         in.EndAt,
				IngredientIDs: in.IngredientIDs,
			}
			if err := tx.Create(&block).Error; err != nil {
				return err
			}
			result = append(result, block)
		}

		for id := range current {
			if !incoming[id] {
				if err := tx.Delete(&models.PlanBlock{}, "id = ?", id).Error; err != nil {
					return err
				}
			}
		}

		plan.DailyAim = truncate(dailyAim, 500)
		plan.DailyIngredientIDs = dailyIngredientIDs
		if err := tx.Save(&plan).Error; err != nil {
			return err
		}

		sortBlocks(result)
		plan.Blocks = result

		if snapshotDate != "" {
			if err := upsertPlanSnapshot(tx, &plan, snapshotDate); err != nil {
				return err
			}
		}

		saved = &plan
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cachePlan(ctx, saved)
	return saved, nil
}

// SaveReview stores review-mode feedback. Block shapes are untouched:
// only feedback text per block and the day feedback change. Feedback on
// blocks that have not ended yet, or that no longer exist, is discarded.
func (s *PlanService) SaveReview(ctx context.Context, userID uuid.UUID, date string, blockFeedback map[string]string, dayFeedback string, now time.Time) (*models.Plan, error) {
	var plan models.Plan
	err := s.db.Preload("Blocks").Where("user_id = ? AND date = ?", userID, date).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	ends := make([]timeline.BlockEnd, len(plan.Blocks))
	for i, b := range plan.Blocks {
		ends[i] = timeline.BlockEnd{ID: b.ID.String(), EndAt: b.EndAt}
	}
	pruned := timeline.PruneFeedback(blockFeedback, ends, now)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range plan.Blocks {
			b := &plan.Blocks[i]
			text, ok := pruned[b.ID.String()]
			if !ok {
				text = ""
			}
			if b.Feedback == text {
				continue
			}
			b.Feedback = text
			if err := tx.Model(&models.PlanBlock{}).Where("id = ?", b.ID).
				Update("feedback", text).Error; err != nil {
				return err
			}
		}
		plan.DayFeedback = dayFeedback
		return tx.Model(&models.Plan{}).Where("id = ?", plan.ID).
			Update("day_feedback", dayFeedback).Error
	})
	if err != nil {
		return nil, err
	}

	sortBlocks(plan.Blocks)
	s.cachePlan(ctx, &plan)
	return &plan, nil
}

// GetPlanAt reconstructs a plan as it looked at the most recent snapshot
// taken on or before asOf.
func (s *PlanService) GetPlanAt(userID uuid.UUID, planDate, asOf string) (*models.Plan, error) {
	var snap models.PlanSnapshot
	err := s.db.Where("user_id = ? AND plan_date = ? AND snapshot_date <= ?", userID, planDate, asOf).
		Order("snapshot_date DESC").First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	blocks := snap.Blocks
	sortBlocks(blocks)
	return &models.Plan{
		UserID:             userID,
		Date:               snap.PlanDate,
		DailyAim:           snap.DailyAim,
		DailyIngredientIDs: snap.DailyIngredientIDs,
		Blocks:             blocks,
	}, nil
}

// ListSnapshotDates returns the snapshot dates available for one plan date.
func (s *PlanService) ListSnapshotDates(userID uuid.UUID, planDate string) ([]string, error) {
	var dates []string
	err := s.db.Model(&models.PlanSnapshot{}).
		Where("user_id = ? AND plan_date = ?", userID, planDate).
		Order("snapshot_date ASC").Pluck("snapshot_date", &dates).Error
	return dates, err
}

func upsertPlanSnapshot(tx *gorm.DB, plan *models.Plan, snapshotDate string) error {
	var snap models.PlanSnapshot
	err := tx.Where("user_id = ? AND snapshot_date = ? AND plan_date = ?",
		plan.UserID, snapshotDate, plan.Date).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		snap = models.PlanSnapshot{
			ID:           uuid.New(),
			UserID:       plan.UserID,
			SnapshotDate: snapshotDate,
			PlanDate:     plan.Date,
		}
	} else if err != nil {
		return err
	}
	snap.DailyAim = plan.DailyAim
	snap.DailyIngredientIDs = plan.DailyIngredientIDs
	snap.Blocks = plan.Blocks
	return tx.Save(&snap).Error
}

func sortBlocks(blocks []models.PlanBlock) {
	sort.Slice(blocks, func(i, j int) bool {
		if !blocks[i].StartAt.Equal(blocks[j].StartAt) {
			return blocks[i].StartAt.Before(blocks[j].StartAt)
		}
		return blocks[i].EndAt.Before(blocks[j].EndAt)
	})
}

func (s *PlanService) cachePlan(ctx context.Context, plan *models.Plan) {
	if s.rdb == nil || plan == nil {
		return
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, planCacheKey(plan.UserID, plan.Date), data, planCacheTTL).Err(); err != nil {
		log.Printf("[PlanService] cache write failed: %v", err)
	}
}

func (s *PlanService) cachedPlan(ctx context.Context, userID uuid.UUID, date string) *models.Plan {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, planCacheKey(userID, date)).Bytes()
	if err != nil {
		return nil
	}
	var plan models.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil
	}
	return &plan
}
