package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/americano/projectsync/internal/projects/domain"
)

func (h *Handler) create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid body")
		return
	}
	if err := domain.ValidateStruct(req); err != nil {
		h.writeError(c, err)
		return
	}

	p, err := h.svc.CreateProject(c.Request.Context(), req.toProject())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.GetAllProjects(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if items == nil {
		items = []domain.Project{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	p, err := h.svc.GetProjectByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid body")
		return
	}
	if err := domain.ValidateStruct(req); err != nil {
		h.writeError(c, err)
		return
	}

	p, err := h.svc.UpdateProject(c.Request.Context(), id, req.toDomain())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteProject(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// projectID parses the :id path parameter, answering 400 when it is not an integer.
func (h *Handler) projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.badRequest(c, "invalid project id")
		return 0, false
	}
	return id, true
}
