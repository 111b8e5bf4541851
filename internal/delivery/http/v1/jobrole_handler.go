package v1

import (
	"net/http"
	"strconv"

	"go-application-tracker/internal/delivery/http/response"
	"go-application-tracker/internal/domain"
	"go-application-tracker/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobRoleHandler struct {
	jobRoleUC domain.JobRoleUsecase
}

// NewJobRoleHandler registers job role routes
func NewJobRoleHandler(r *gin.RouterGroup, jobRoleUC domain.JobRoleUsecase) {
	handler := &JobRoleHandler{jobRoleUC: jobRoleUC}

	roles := r.Group("/job-roles")
	{
		roles.POST("", handler.Create)
		roles.GET("", handler.List)
		roles.GET("/:id", handler.Get)
		roles.PUT("/:id", handler.Update)
		roles.DELETE("/:id", handler.Delete)
	}
}

// JobRoleRequest is the request payload for creating or updating a job role
type JobRoleRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Department   string   `json:"department" binding:"required"`
	Type         string   `json:"type" binding:"required,oneof=technical non-technical"`
	IsActive     *bool    `json:"is_active"`
	Requirements []string `json:"requirements"`
}

func (req *JobRoleRequest) toDomain() *domain.JobRole {
	role := &domain.JobRole{
		Title:        req.Title,
		Description:  req.Description,
		Department:   req.Department,
		Type:         req.Type,
		IsActive:     true,
		Requirements: req.Requirements,
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}
	return role
}

// Create godoc
// @Summary      Create job role
// @Description  Create a new job role (admin only)
// @Tags         job-roles
// @Accept       json
// @Produce      json
// @Param        body  body      JobRoleRequest  true  "Job role data"
// @Success      201   {object}  response.Response{data=domain.JobRole}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /job-roles [post]
// @Security     BearerAuth
func (h *JobRoleHandler) Create(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only admins can create job roles"))
		return
	}

	var req JobRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	role := req.toDomain()
	if err := h.jobRoleUC.Create(c.Request.Context(), actor, role); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job role created successfully", role)
}

// List godoc
// @Summary      List job roles
// @Tags         job-roles
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobRole}
// @Router       /job-roles [get]
// @Security     BearerAuth
func (h *JobRoleHandler) List(c *gin.Context) {
	roles, err := h.jobRoleUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job roles retrieved", roles)
}

// Get godoc
// @Summary      Get job role
// @Tags         job-roles
// @Produce      json
// @Param        id  path      int  true  "Job role ID"
// @Success      200 {object}  response.Response{data=domain.JobRole}
// @Failure      404 {object}  response.Response
// @Router       /job-roles/{id} [get]
// @Security     BearerAuth
func (h *JobRoleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job role ID"))
		return
	}

	role, err := h.jobRoleUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job role retrieved", role)
}

// Update godoc
// @Summary      Update job role
// @Description  Update a job role (admin only)
// @Tags         job-roles
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Job role ID"
// @Param        body  body      JobRoleRequest  true  "Job role data"
// @Success      200   {object}  response.Response{data=domain.JobRole}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /job-roles/{id} [put]
// @Security     BearerAuth
func (h *JobRoleHandler) Update(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only admins can update job roles"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job role ID"))
		return
	}

	var req JobRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	role := req.toDomain()
	role.ID = id
	if err := h.jobRoleUC.Update(c.Request.Context(), actor, role); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job role updated successfully", role)
}

// Delete godoc
// @Summary      Delete job role
// @Description  Delete a job role (admin only). Existing applications keep their reference.
// @Tags         job-roles
// @Produce      json
// @Param        id  path      int  true  "Job role ID"
// @Success      200 {object}  response.Response
// @Failure      403 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /job-roles/{id} [delete]
// @Security     BearerAuth
func (h *JobRoleHandler) Delete(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only admins can delete job roles"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job role ID"))
		return
	}

	if err := h.jobRoleUC.Delete(c.Request.Context(), actor, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job role deleted successfully", nil)
}
