package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/dto"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/middleware"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/service"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/response"
)

// BotHandler handles bot HTTP requests
type BotHandler struct {
	botService service.BotService
}

// NewBotHandler creates a new BotHandler
func NewBotHandler(botService service.BotService) *BotHandler {
	return &BotHandler{botService: botService}
}

func toBotResponse(bot *domain.Bot) dto.BotResponse {
	resp := dto.BotResponse{
		ID:           bot.ID,
		Name:         bot.Name,
		Description:  bot.Description,
		Platform:     string(bot.Platform),
		Style:        bot.Style,
		Status:       string(bot.Status),
		SystemPrompt: bot.SystemPrompt,
		CreatedAt:    bot.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    bot.UpdatedAt.Format(time.RFC3339),
	}
	if bot.DeletedAt != nil {
		resp.DeletedAt = bot.DeletedAt.Format(time.RFC3339)
	}
	return resp
}

func toBotResponses(bots []*domain.Bot) []dto.BotResponse {
	out := make([]dto.BotResponse, 0, len(bots))
	for _, bot := range bots {
		out = append(out, toBotResponse(bot))
	}
	return out
}

// respondBotError maps bot service errors to HTTP responses
func respondBotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBotNotFound):
		response.NotFound(c, "Bot not found")
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(c, "You do not own this bot")
	case errors.Is(err, service.ErrInvalidPlatform):
		response.BadRequest(c, "Unsupported platform")
	case errors.Is(err, domain.ErrInvalidTransition):
		response.Conflict(c, "Bot cannot change to that status")
	default:
		response.InternalError(c, err)
	}
}

func identityOrAbort(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
	}
	return identity, ok
}

// Create handles POST /api/bots
func (h *BotHandler) Create(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bot, err := h.botService.Create(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondBotError(c, err)
		return
	}
	response.Created(c, toBotResponse(bot))
}

// Get handles GET /api/bots/:id
func (h *BotHandler) Get(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	bot, err := h.botService.Get(c.Request.Context(), identity.UserID, c.Param("id"))
	if err != nil {
		respondBotError(c, err)
		return
	}
	response.Success(c, toBotResponse(bot))
}

// Home handles GET /api/bots/home
func (h *BotHandler) Home(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	home, err := h.botService.Home(c.Request.Context(), identity.UserID)
	if err != nil {
		respondBotError(c, err)
		return
	}

	response.Success(c, dto.HomeResponse{
		TotalBots:  home.TotalBots,
		ActiveBots: home.ActiveBots,
		RecentBots: toBotResponses(home.RecentBots),
	})
}

// List handles GET /api/bots with an optional created_at cursor
func (h *BotHandler) List(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var cursor *time.Time
	if raw := c.Query("cursor"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			response.BadRequest(c, "Invalid cursor")
			return
		}
		cursor = &parsed
	}

	page, err := h.botService.ListManage(c.Request.Context(), identity.UserID, cursor)
	if err != nil {
		respondBotError(c, err)
		return
	}

	resp := dto.BotListResponse{
		Bots:    toBotResponses(page.Bots),
		Total:   page.Total,
		HasMore: page.HasMore,
	}
	if page.NextCursor != nil {
		resp.NextCursor = page.NextCursor.Format(time.RFC3339Nano)
	}
	response.Success(c, resp)
}

// SoftDelete handles DELETE /api/bots/:id
func (h *BotHandler) SoftDelete(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	if err := h.botService.SoftDelete(c.Request.Context(), identity.UserID, c.Param("id")); err != nil {
		respondBotError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Bot moved to trash"})
}

// ListDeleted handles GET /api/bots/deleted
func (h *BotHandler) ListDeleted(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	bots, err := h.botService.ListDeleted(c.Request.Context(), identity.UserID)
	if err != nil {
		respondBotError(c, err)
		return
	}
	response.Success(c, toBotResponses(bots))
}

// Restore handles POST /api/bots/:id/restore
func (h *BotHandler) Restore(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	bot, err := h.botService.Restore(c.Request.Context(), identity.UserID, c.Param("id"))
	if err != nil {
		respondBotError(c, err)
		return
	}
	response.Success(c, toBotResponse(bot))
}

// PermanentDelete handles DELETE /api/bots/:id/permanent
func (h *BotHandler) PermanentDelete(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	if err := h.botService.PermanentDelete(c.Request.Context(), identity.UserID, c.Param("id")); err != nil {
		respondBotError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Bot permanently deleted"})
}
