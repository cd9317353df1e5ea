package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-estimation-api/internal/dto"
	"github.com/yukikurage/project-estimation-api/internal/services"
	"github.com/yukikurage/project-estimation-api/internal/utils"
)

type ProgrammerHandler struct {
	programmerService *services.ProgrammerService
	log               *slog.Logger
}

func NewProgrammerHandler(programmerService *services.ProgrammerService, log *slog.Logger) *ProgrammerHandler {
	return &ProgrammerHandler{
		programmerService: programmerService,
		log:               log,
	}
}

type programmerRequest struct {
	Name        string           `json:"name" validate:"required,notblank,max=255"`
	Seniority   string           `json:"seniority" validate:"required,notblank,max=50"`
	Coefficient *decimal.Decimal `json:"coefficient" validate:"required,decimal_scale=2,decimal_gt=0,decimal_lte=9.99"`
}

func (r programmerRequest) input() services.ProgrammerInput {
	return services.ProgrammerInput{
		Name:        r.Name,
		Seniority:   r.Seniority,
		Coefficient: *r.Coefficient,
	}
}

// CreateProgrammer creates a new programmer
func (h *ProgrammerHandler) CreateProgrammer(c *gin.Context) {
	var req programmerRequest
	if !bindJSON(c, &req) {
		return
	}

	programmer, err := h.programmerService.CreateProgrammer(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProgrammerDTO(*programmer))
}

// ListProgrammers returns programmers with their project counts
func (h *ProgrammerHandler) ListProgrammers(c *gin.Context) {
	programmers, err := h.programmerService.ListProgrammers(c.Request.Context(), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items := make([]dto.ProgrammerDTO, len(programmers))
	for i, p := range programmers {
		items[i] = dto.ToProgrammerSummaryDTO(p)
	}

	c.JSON(http.StatusOK, items)
}

// GetProgrammer returns a programmer by ID
func (h *ProgrammerHandler) GetProgrammer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	programmer, err := h.programmerService.GetProgrammer(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProgrammerDTO(*programmer))
}

// UpdateProgrammer replaces a programmer's fields
func (h *ProgrammerHandler) UpdateProgrammer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req programmerRequest
	if !bindJSON(c, &req) {
		return
	}

	programmer, err := h.programmerService.UpdateProgrammer(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProgrammerDTO(*programmer))
}

// DeleteProgrammer deletes a programmer that nothing references
func (h *ProgrammerHandler) DeleteProgrammer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.programmerService.DeleteProgrammer(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Programmer deleted successfully",
	})
}
