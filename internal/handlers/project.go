package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-estimation-api/internal/dto"
	"github.com/yukikurage/project-estimation-api/internal/services"
	"github.com/yukikurage/project-estimation-api/internal/utils"
)

type ProjectHandler struct {
	projectService  *services.ProjectService
	planningService *services.PlanningService
	log             *slog.Logger
}

func NewProjectHandler(projectService *services.ProjectService, planningService *services.PlanningService, log *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService:  projectService,
		planningService: planningService,
		log:             log,
	}
}

type projectRequest struct {
	Name          string  `json:"name" validate:"required,notblank,max=255"`
	Description   string  `json:"description"`
	StartDate     *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	ResponsibleID *uint64 `json:"responsible_id" validate:"omitempty,gt=0"`
}

func (r projectRequest) input() services.ProjectInput {
	return services.ProjectInput{
		Name:          r.Name,
		Description:   r.Description,
		StartDate:     parseDate(r.StartDate),
		EndDate:       parseDate(r.EndDate),
		ResponsibleID: r.ResponsibleID,
	}
}

type createProjectRequest struct {
	Name          string             `json:"name" validate:"required,notblank,max=255"`
	Description   string             `json:"description"`
	StartDate     *string            `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string            `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	ResponsibleID *uint64            `json:"responsible_id" validate:"omitempty,gt=0"`
	Stages        []stageTreeRequest `json:"stages" validate:"dive"`
}

type stageTreeRequest struct {
	Name         string                   `json:"name" validate:"required,notblank,max=255"`
	Description  string                   `json:"description"`
	OrderIndex   int                      `json:"order_index" validate:"gte=0"`
	ProjectTasks []projectTaskTreeRequest `json:"project_tasks" validate:"dive"`
}

type projectTaskTreeRequest struct {
	TaskID       uint64  `json:"task_id" validate:"required,gt=0"`
	ProgrammerID *uint64 `json:"programmer_id" validate:"omitempty,gt=0"`
	Status       string  `json:"status" validate:"omitempty,notblank,max=50"`
}

func (r stageTreeRequest) input() services.StageInput {
	in := services.StageInput{
		Name:         r.Name,
		Description:  r.Description,
		OrderIndex:   r.OrderIndex,
		ProjectTasks: make([]services.ProjectTaskInput, len(r.ProjectTasks)),
	}
	for i, pt := range r.ProjectTasks {
		in.ProjectTasks[i] = pt.input()
	}
	return in
}

func (r projectTaskTreeRequest) input() services.ProjectTaskInput {
	return services.ProjectTaskInput{
		TaskID:       r.TaskID,
		ProgrammerID: r.ProgrammerID,
		Status:       r.Status,
	}
}

type suggestStagesRequest struct {
	Brief string `json:"brief" validate:"required,notblank,max=4000"`
}

// CreateProject creates a project, optionally with nested stages and
// assignments, and returns its estimate
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.CreateProjectInput{
		ProjectInput: projectRequest{
			Name:          req.Name,
			Description:   req.Description,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			ResponsibleID: req.ResponsibleID,
		}.input(),
		Stages: make([]services.StageInput, len(req.Stages)),
	}
	for i, stage := range req.Stages {
		input.Stages[i] = stage.input()
	}

	view, err := h.projectService.CreateProject(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDetailDTO(*view))
}

// ListProjects returns a page of projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context(), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items := make([]dto.ProjectDTO, len(projects))
	for i, p := range projects {
		items[i] = dto.ToProjectDTO(p)
	}

	c.JSON(http.StatusOK, items)
}

// GetProject returns the project with its stages, assignments and estimate
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.projectService.GetProjectWithEstimate(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*view))
}

// UpdateProject replaces a project's own fields
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project with its stages and assignments
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// SuggestStages drafts a stage plan for a project brief from the task catalog
func (h *ProjectHandler) SuggestStages(c *gin.Context) {
	var req suggestStagesRequest
	if !bindJSON(c, &req) {
		return
	}

	plans, err := h.planningService.SuggestStages(c.Request.Context(), req.Brief)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stages": dto.ToStagePlanDTOs(plans),
	})
}
