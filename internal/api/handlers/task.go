package handlers

import (
	"net/http"

	"entity-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles HTTP requests for tasks
type TaskHandler struct {
	taskService service.TaskServiceInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskServiceInterface) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListEntityTasks handles GET /api/entities/:id/tasks
// @Summary List tasks of an entity
// @Tags tasks
// @Produce json
// @Param id path int true "Entity ID"
// @Success 200 {array} service.TaskResponse "Successfully retrieved tasks"
// @Failure 404 {object} ErrorResponse "Entity not found"
// @Router /entities/{id}/tasks [get]
func (h *TaskHandler) ListEntityTasks(c *gin.Context) {
	entityID, ok := parseID(c, "id", "entity")
	if !ok {
		return
	}

	tasks, err := h.taskService.GetByEntityID(c.Request.Context(), entityID)
	if err != nil {
		respondError(c, err, "Failed to get tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask handles POST /api/entities/:id/tasks
// @Summary Create a task
// @Description Dates use YYYY-MM-DD; dependencies is a list of task ids
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Entity ID"
// @Param task body service.CreateTaskRequest true "Task data"
// @Success 201 {object} service.TaskResponse "Successfully created task"
// @Failure 400 {object} ErrorResponse "Invalid request body or date"
// @Failure 404 {object} ErrorResponse "Entity not found"
// @Router /entities/{id}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	entityID, ok := parseID(c, "id", "entity")
	if !ok {
		return
	}

	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), entityID, &req)
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTask handles GET /api/tasks/:id
// @Summary Get task by ID
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} service.TaskResponse "Successfully retrieved task"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT and PATCH /api/tasks/:id
// @Summary Update a task
// @Description An empty string clears a date; null clears any optional field
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param task body service.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} service.TaskResponse "Successfully updated task"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Router /tasks/{id} [put]
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
// @Summary Delete a task
// @Tags tasks
// @Param id path int true "Task ID"
// @Success 204 "Task deleted"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}
