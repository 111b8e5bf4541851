package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-application-tracker/internal/delivery/http/response"
	"go-application-tracker/internal/domain"
	"go-application-tracker/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := r.Group("/applications")
	{
		applications.POST("", handler.Create)
		applications.GET("", handler.List)
		applications.GET("/stats", handler.Stats)
		applications.GET("/:id", handler.Get)
		applications.PUT("/:id/status", handler.UpdateStatus)
	}
}

// CreateApplicationRequest is the request payload for submitting an application
type CreateApplicationRequest struct {
	JobRoleID      int64      `json:"job_role_id" binding:"required"`
	Resume         string     `json:"resume" binding:"required"`
	CoverLetter    *string    `json:"cover_letter"`
	Experience     *int       `json:"experience"`
	Skills         []string   `json:"skills"`
	ExpectedSalary *float64   `json:"expected_salary"`
	AvailableFrom  *time.Time `json:"available_from"`
}

// Create godoc
// @Summary      Submit a new application
// @Description  Create a job application (applicant only); status starts at applied
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      CreateApplicationRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Create(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role != domain.RoleApplicant {
		c.Error(apperror.Forbidden("Only applicants can submit applications"))
		return
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app := &domain.Application{
		JobRoleID:      req.JobRoleID,
		Resume:         req.Resume,
		CoverLetter:    req.CoverLetter,
		Experience:     req.Experience,
		Skills:         req.Skills,
		ExpectedSalary: req.ExpectedSalary,
		AvailableFrom:  req.AvailableFrom,
	}

	created, err := h.applicationUC.Create(c.Request.Context(), actor, app)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", created)
}

// List godoc
// @Summary      List applications
// @Description  Get applications visible to the caller's role
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      401  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	applications, err := h.applicationUC.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// Get godoc
// @Summary      Get one application
// @Description  Get a single application with its activity log, newest entries first
// @Tags         applications
// @Produce      json
// @Param        id  path      int  true  "Application ID"
// @Success      200 {object}  response.Response{data=domain.ApplicationDetail}
// @Failure      403 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	detail, err := h.applicationUC.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", detail)
}

// UpdateStatusRequest is the request payload for a manual status transition
type UpdateStatusRequest struct {
	Status  string  `json:"status" binding:"required"`
	Comment *string `json:"comment"`
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Manually transition an application (admin or bot)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "Status update"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleBot {
		c.Error(apperror.Forbidden("Only admins and the bot can update application status"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), actor, id, req.Status, req.Comment)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated successfully", app)
}

// Stats godoc
// @Summary      Dashboard statistics
// @Description  Aggregate counts scoped to the caller's role
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DashboardStats}
// @Failure      401  {object}  response.Response
// @Router       /applications/stats [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.applicationUC.Stats(c.Request.Context(), actorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Stats retrieved", stats)
}
