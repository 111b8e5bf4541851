package v1

import (
	"net/http"
	"strconv"

	"go-application-tracker/internal/delivery/http/response"
	"go-application-tracker/internal/domain"
	"go-application-tracker/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type BotHandler struct {
	botUC domain.BotUsecase
}

// NewBotHandler registers bot operation routes. Every route requires the
// bot or admin role.
func NewBotHandler(r *gin.RouterGroup, botUC domain.BotUsecase) {
	handler := &BotHandler{botUC: botUC}

	bot := r.Group("/bot")
	bot.Use(requireBotOrAdmin())
	{
		bot.POST("/process", handler.Process)
		bot.GET("/activity", handler.Activity)
		bot.POST("/trigger/:applicationId", handler.Trigger)
	}
}

func requireBotOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		if role != domain.RoleBot && role != domain.RoleAdmin {
			c.Error(apperror.Forbidden("Bot operations require the bot or admin role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// TriggerRequest is the optional request payload for a manual trigger
type TriggerRequest struct {
	Comment *string `json:"comment"`
}

// Process godoc
// @Summary      Run automated processing
// @Description  Process every eligible application once, advancing each with the configured probability
// @Tags         bot
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.BatchResult}
// @Failure      403  {object}  response.Response
// @Router       /bot/process [post]
// @Security     BearerAuth
func (h *BotHandler) Process(c *gin.Context) {
	result, err := h.botUC.RunOnce(c.Request.Context(), actorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Automated processing complete", result)
}

// Activity godoc
// @Summary      Bot activity summary
// @Description  Recent automated ledger entries and the all-time automated count
// @Tags         bot
// @Produce      json
// @Param        limit  query     int  false  "Max entries to return (default 10)"
// @Success      200    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /bot/activity [get]
// @Security     BearerAuth
func (h *BotHandler) Activity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, total, err := h.botUC.Activity(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Bot activity retrieved", gin.H{
		"recent_activity": entries,
		"total_automated": total,
	})
}

// Trigger godoc
// @Summary      Trigger one application
// @Description  Unconditionally advance a specific eligible application by one step
// @Tags         bot
// @Accept       json
// @Produce      json
// @Param        applicationId  path      int             true   "Application ID"
// @Param        body           body      TriggerRequest  false  "Optional comment"
// @Success      200            {object}  response.Response{data=domain.Application}
// @Failure      403            {object}  response.Response
// @Failure      404            {object}  response.Response
// @Router       /bot/trigger/{applicationId} [post]
// @Security     BearerAuth
func (h *BotHandler) Trigger(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("applicationId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req TriggerRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	app, err := h.botUC.TriggerSingle(c.Request.Context(), id, actorFrom(c), req.Comment)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated successfully", app)
}
