package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"tricky-turns-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminConsoleService carries the moderation and content-management surface
// behind admin auth: user bans, catalog CRUD, data views and the destructive
// leaderboard wipe. Every mutation lands in the audit log.
type AdminConsoleService struct {
	DB           *gorm.DB
	Admins       *AdminService
	Leaderboards *LeaderboardService
}

func NewAdminConsoleService(db *gorm.DB, admins *AdminService, leaderboards *LeaderboardService) *AdminConsoleService {
	return &AdminConsoleService{DB: db, Admins: admins, Leaderboards: leaderboards}
}

func adminFromCtx(c *fiber.Ctx) *models.Admin {
	return c.Locals("admin").(*models.Admin)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// ---- users & admins ----

func (s *AdminConsoleService) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := s.DB.Order("id ASC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load users"})
	}
	return c.JSON(users)
}

type adminUserActionRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=128"`
}

func (s *AdminConsoleService) setBanned(c *fiber.Ctx, banned bool) error {
	admin := adminFromCtx(c)

	var req adminUserActionRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	res := s.DB.Model(&models.User{}).Where("owner_id = ?", req.OwnerID).Update("is_banned", banned)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update user"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}

	action, verb := "unban_user", "unbanned"
	if banned {
		action, verb = "ban_user", "banned"
	}
	s.Admins.Audit(admin.Username, action, "users", 0, fmt.Sprintf("%s %s", verb, req.OwnerID))
	return c.JSON(fiber.Map{"message": fmt.Sprintf("User %s %s", req.OwnerID, verb)})
}

func (s *AdminConsoleService) BanUser(c *fiber.Ctx) error   { return s.setBanned(c, true) }
func (s *AdminConsoleService) UnbanUser(c *fiber.Ctx) error { return s.setBanned(c, false) }

func (s *AdminConsoleService) ListAdmins(c *fiber.Ctx) error {
	var admins []models.Admin
	if err := s.DB.Order("id ASC").Find(&admins).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load admins"})
	}
	return c.JSON(admins)
}

// ---- game modes ----

type adminGameModeRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=1000"`
	IsActive    *bool  `json:"is_active"`
}

func (s *AdminConsoleService) ListModes(c *fiber.Ctx) error {
	var modes []models.GameMode
	if err := s.DB.Order("id ASC").Find(&modes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load game modes"})
	}
	return c.JSON(modes)
}

func (s *AdminConsoleService) CreateMode(c *fiber.Ctx) error {
	admin := adminFromCtx(c)

	var req adminGameModeRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	mode := models.GameMode{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.DB.Create(&mode).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "mode name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create mode"})
	}
	s.Admins.Audit(admin.Username, "create_mode", "game_modes", mode.ID, mode.Name)
	return c.JSON(fiber.Map{"id": mode.ID, "message": "Mode created"})
}

func (s *AdminConsoleService) UpdateMode(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req adminGameModeRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	updates := map[string]interface{}{"name": req.Name, "description": req.Description}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	res := s.DB.Model(&models.GameMode{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update mode"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "mode not found"})
	}
	s.Admins.Audit(admin.Username, "update_mode", "game_modes", id, "")
	return c.JSON(fiber.Map{"message": "Mode updated"})
}

func (s *AdminConsoleService) DeleteMode(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := s.DB.Delete(&models.GameMode{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete mode"})
	}
	s.Admins.Audit(admin.Username, "delete_mode", "game_modes", id, "")
	return c.JSON(fiber.Map{"message": "Mode deleted"})
}

// ---- leaderboards, history, sessions ----

func (s *AdminConsoleService) ListLeaderboards(c *fiber.Ctx) error {
	var entries []models.LeaderboardScore
	if err := s.DB.Order("mode_id ASC, score DESC").Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load leaderboards"})
	}
	return c.JSON(entries)
}

func (s *AdminConsoleService) ListScoreHistory(c *fiber.Ctx) error {
	q := s.DB.Order("submitted_at DESC").Limit(500)
	if ownerID := c.Query("owner_id"); ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	var entries []models.ScoreHistory
	if err := q.Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load score history"})
	}
	return c.JSON(entries)
}

func (s *AdminConsoleService) ListGameSessions(c *fiber.Ctx) error {
	q := s.DB.Order("started_at DESC").Limit(500)
	if ownerID := c.Query("owner_id"); ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	var sessions []models.GameSession
	if err := q.Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load sessions"})
	}
	return c.JSON(sessions)
}

// WipeLeaderboard handles DELETE /admin/leaderboard/all. Irreversible, which
// is exactly why it lives behind admin auth and gets audited.
func (s *AdminConsoleService) WipeLeaderboard(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	if err := s.Leaderboards.WipeAll(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to wipe leaderboard"})
	}
	s.Admins.Audit(admin.Username, "wipe_leaderboard", "leaderboard_scores", 0, "all rows deleted")
	return c.SendStatus(fiber.StatusNoContent)
}

// ---- shop ----

type adminShopItemRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description" validate:"max=1000"`
	Price       float64 `json:"price" validate:"min=0"`
	Type        string  `json:"type" validate:"max=32"`
	IsActive    *bool   `json:"is_active"`
}

func (s *AdminConsoleService) ListShopItems(c *fiber.Ctx) error {
	var items []models.ShopItem
	if err := s.DB.Order("id ASC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load shop items"})
	}
	return c.JSON(items)
}

func (s *AdminConsoleService) CreateShopItem(c *fiber.Ctx) error {
	admin := adminFromCtx(c)

	var req adminShopItemRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	item := models.ShopItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Type:        req.Type,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create shop item"})
	}
	s.Admins.Audit(admin.Username, "create_shop_item", "shop_items", item.ID, item.Name)
	return c.JSON(fiber.Map{"id": item.ID, "message": "Shop item created"})
}

func (s *AdminConsoleService) UpdateShopItem(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req adminShopItemRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"type":        req.Type,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	res := s.DB.Model(&models.ShopItem{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update shop item"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "shop item not found"})
	}
	s.Admins.Audit(admin.Username, "update_shop_item", "shop_items", id, "")
	return c.JSON(fiber.Map{"message": "Shop item updated"})
}

func (s *AdminConsoleService) DeleteShopItem(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := s.DB.Delete(&models.ShopItem{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete shop item"})
	}
	s.Admins.Audit(admin.Username, "delete_shop_item", "shop_items", id, "")
	return c.JSON(fiber.Map{"message": "Shop item deleted"})
}

func (s *AdminConsoleService) ListPurchases(c *fiber.Ctx) error {
	var purchases []models.Purchase
	if err := s.DB.Order("purchased_at DESC").Limit(500).Find(&purchases).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load purchases"})
	}
	return c.JSON(purchases)
}

// ---- contests ----

type adminContestRequest struct {
	Name       string  `json:"name" validate:"required,max=120"`
	ModeID     uint    `json:"mode_id" validate:"required"`
	StartAt    string  `json:"start_at" validate:"required"`
	EndAt      string  `json:"end_at" validate:"required"`
	EntryFee   float64 `json:"entry_fee" validate:"min=0"`
	RewardPool float64 `json:"reward_pool" validate:"min=0"`
}

func parseContestWindow(startStr, endStr string) (time.Time, time.Time, error) {
	startAt, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_at must be RFC3339")
	}
	endAt, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_at must be RFC3339")
	}
	if !endAt.After(startAt) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_at must be after start_at")
	}
	return startAt.UTC(), endAt.UTC(), nil
}

func (s *AdminConsoleService) ListContests(c *fiber.Ctx) error {
	var contests []models.Contest
	if err := s.DB.Order("start_at DESC").Find(&contests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load contests"})
	}
	return c.JSON(contests)
}

func (s *AdminConsoleService) CreateContest(c *fiber.Ctx) error {
	admin := adminFromCtx(c)

	var req adminContestRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}
	startAt, endAt, err := parseContestWindow(req.StartAt, req.EndAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	contest := models.Contest{
		Name:       req.Name,
		ModeID:     req.ModeID,
		StartAt:    startAt,
		EndAt:      endAt,
		EntryFee:   req.EntryFee,
		RewardPool: req.RewardPool,
		Status:     models.ContestStatusScheduled,
	}
	if err := s.DB.Create(&contest).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create contest"})
	}
	s.Admins.Audit(admin.Username, "create_contest", "contests", contest.ID, contest.Name)
	return c.JSON(fiber.Map{"id": contest.ID, "message": "Contest created"})
}

func (s *AdminConsoleService) UpdateContest(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req adminContestRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}
	startAt, endAt, err := parseContestWindow(req.StartAt, req.EndAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res := s.DB.Model(&models.Contest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        req.Name,
		"mode_id":     req.ModeID,
		"start_at":    startAt,
		"end_at":      endAt,
		"entry_fee":   req.EntryFee,
		"reward_pool": req.RewardPool,
	})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update contest"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "contest not found"})
	}
	s.Admins.Audit(admin.Username, "update_contest", "contests", id, "")
	return c.JSON(fiber.Map{"message": "Contest updated"})
}

func (s *AdminConsoleService) DeleteContest(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := s.DB.Delete(&models.Contest{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete contest"})
	}
	s.Admins.Audit(admin.Username, "delete_contest", "contests", id, "")
	return c.JSON(fiber.Map{"message": "Contest deleted"})
}

func (s *AdminConsoleService) ListContestEntries(c *fiber.Ctx) error {
	q := s.DB.Order("entered_at DESC").Limit(500)
	if contestID, err := strconv.ParseUint(c.Query("contest_id", "0"), 10, 32); err == nil && contestID > 0 {
		q = q.Where("contest_id = ?", contestID)
	}
	var entries []models.ContestEntry
	if err := q.Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load contest entries"})
	}
	return c.JSON(entries)
}

// ---- support ----

func (s *AdminConsoleService) ListSupportTickets(c *fiber.Ctx) error {
	var tickets []models.SupportTicket
	if err := s.DB.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load tickets"})
	}
	return c.JSON(tickets)
}

func (s *AdminConsoleService) CloseSupportTicket(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res := s.DB.Model(&models.SupportTicket{}).Where("id = ?", id).Update("status", "closed")
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to close ticket"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "ticket not found"})
	}
	s.Admins.Audit(admin.Username, "close_ticket", "support_tickets", id, "")
	return c.JSON(fiber.Map{"message": "Ticket closed"})
}

// ---- promo codes ----

type adminPromoCodeRequest struct {
	Code     string `json:"code" validate:"required,max=64"`
	Reward   string `json:"reward" validate:"max=200"`
	MaxUses  int    `json:"max_uses" validate:"min=0"`
	IsActive *bool  `json:"is_active"`
}

func (s *AdminConsoleService) ListPromoCodes(c *fiber.Ctx) error {
	var codes []models.PromoCode
	if err := s.DB.Order("id ASC").Find(&codes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load promo codes"})
	}
	return c.JSON(codes)
}

func (s *AdminConsoleService) CreatePromoCode(c *fiber.Ctx) error {
	admin := adminFromCtx(c)

	var req adminPromoCodeRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	promo := models.PromoCode{
		Code:     req.Code,
		Reward:   req.Reward,
		MaxUses:  req.MaxUses,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := s.DB.Create(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "promo code already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create promo code"})
	}
	s.Admins.Audit(admin.Username, "create_promo", "promo_codes", promo.ID, promo.Code)
	return c.JSON(fiber.Map{"id": promo.ID, "message": "Promo code created"})
}

func (s *AdminConsoleService) UpdatePromoCode(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req adminPromoCodeRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	updates := map[string]interface{}{
		"code":     req.Code,
		"reward":   req.Reward,
		"max_uses": req.MaxUses,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	res := s.DB.Model(&models.PromoCode{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update promo code"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "promo code not found"})
	}
	s.Admins.Audit(admin.Username, "update_promo", "promo_codes", id, "")
	return c.JSON(fiber.Map{"message": "Promo code updated"})
}

func (s *AdminConsoleService) DeletePromoCode(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := s.DB.Delete(&models.PromoCode{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete promo code"})
	}
	s.Admins.Audit(admin.Username, "delete_promo", "promo_codes", id, "")
	return c.JSON(fiber.Map{"message": "Promo code deleted"})
}

// ---- feature toggles ----

type adminFeatureToggleRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Enabled     *bool  `json:"enabled"`
	Description string `json:"description" validate:"max=1000"`
}

func (s *AdminConsoleService) ListFeatureToggles(c *fiber.Ctx) error {
	var toggles []models.FeatureToggle
	if err := s.DB.Order("id ASC").Find(&toggles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load feature toggles"})
	}
	return c.JSON(toggles)
}

func (s *AdminConsoleService) CreateFeatureToggle(c *fiber.Ctx) error {
	admin := adminFromCtx(c)

	var req adminFeatureToggleRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	toggle := models.FeatureToggle{
		Name:        req.Name,
		Enabled:     req.Enabled != nil && *req.Enabled,
		Description: req.Description,
	}
	if err := s.DB.Create(&toggle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "feature toggle already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create feature toggle"})
	}
	s.Admins.Audit(admin.Username, "create_toggle", "feature_toggles", toggle.ID, toggle.Name)
	return c.JSON(fiber.Map{"id": toggle.ID, "message": "Feature toggle created"})
}

func (s *AdminConsoleService) UpdateFeatureToggle(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req adminFeatureToggleRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	updates := map[string]interface{}{"name": req.Name, "description": req.Description}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	res := s.DB.Model(&models.FeatureToggle{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update feature toggle"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "feature toggle not found"})
	}
	s.Admins.Audit(admin.Username, "update_toggle", "feature_toggles", id, "")
	return c.JSON(fiber.Map{"message": "Feature toggle updated"})
}

func (s *AdminConsoleService) DeleteFeatureToggle(c *fiber.Ctx) error {
	admin := adminFromCtx(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := s.DB.Delete(&models.FeatureToggle{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete feature toggle"})
	}
	s.Admins.Audit(admin.Username, "delete_toggle", "feature_toggles", id, "")
	return c.JSON(fiber.Map{"message": "Feature toggle deleted"})
}

// ---- audit log ----

func (s *AdminConsoleService) ListAuditLog(c *fiber.Ctx) error {
	var entries []models.AdminAuditLog
	if err := s.DB.Order("timestamp DESC").Limit(1000).Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load audit log"})
	}
	return c.JSON(entries)
}
