package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/profile"
	"alfredoptarigan/job-tracker/internal/services"
)

type DashboardHandler struct {
	dashboard services.DashboardService
	profile   *profile.Profile
}

func NewDashboardHandler(dashboard services.DashboardService, p *profile.Profile) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		profile:   p,
	}
}

// HandleDashboard handles GET /dashboard
func (h *DashboardHandler) HandleDashboard(c *fiber.Ctx) error {
	resp, err := h.dashboard.Dashboard()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// HandleAnalytics handles GET /analytics
func (h *DashboardHandler) HandleAnalytics(c *fiber.Ctx) error {
	resp, err := h.dashboard.Analytics()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// HandleProfile handles GET /profile
func (h *DashboardHandler) HandleProfile(c *fiber.Ctx) error {
	return c.JSON(ProfileSummary(h.profile))
}

// ProfileSummary describes the loaded profile without its keyword lists.
func ProfileSummary(p *profile.Profile) models.ProfileResponse {
	categories := make([]models.CategorySummary, 0, len(p.Categories))
	for _, cat := range p.Categories {
		categories = append(categories, models.CategorySummary{
			ID:     cat.ID,
			Label:  cat.Label,
			Weight: cat.Weight,
			Skills: len(cat.Skills),
		})
	}

	return models.ProfileResponse{
		Version:          p.Version,
		Categories:       categories,
		TotalWeight:      p.TotalCategoryWeight(),
		Industries:       len(p.Industries),
		RoleLevels:       len(p.RoleLevels),
		PreferredRegions: p.PreferredRegions,
	}
}
