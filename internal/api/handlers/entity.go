package handlers

import (
	"net/http"

	"entity-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// EntityHandler handles HTTP requests for entities
type EntityHandler struct {
	entityService service.EntityServiceInterface
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(entityService service.EntityServiceInterface) *EntityHandler {
	return &EntityHandler{entityService: entityService}
}

// ListEntities handles GET /api/entities
// @Summary List entities
// @Description Get all entities without their children
// @Tags entities
// @Produce json
// @Success 200 {array} service.EntityResponse "Successfully retrieved entities"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /entities [get]
func (h *EntityHandler) ListEntities(c *gin.Context) {
	entities, err := h.entityService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get entities")
		return
	}

	c.JSON(http.StatusOK, entities)
}

// CreateEntity handles POST /api/entities
// @Summary Create an entity
// @Tags entities
// @Accept json
// @Produce json
// @Param entity body service.CreateEntityRequest true "Entity data"
// @Success 201 {object} service.EntityResponse "Successfully created entity"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /entities [post]
func (h *EntityHandler) CreateEntity(c *gin.Context) {
	var req service.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	entity, err := h.entityService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create entity")
		return
	}

	c.JSON(http.StatusCreated, entity)
}

// GetEntity handles GET /api/entities/:id
// @Summary Get entity by ID
// @Description Get an entity with its accounts, tasks and documents
// @Tags entities
// @Produce json
// @Param id path int true "Entity ID"
// @Success 200 {object} service.EntityDetailResponse "Successfully retrieved entity"
// @Failure 400 {object} ErrorResponse "Invalid entity ID"
// @Failure 404 {object} ErrorResponse "Entity not found"
// @Router /entities/{id} [get]
func (h *EntityHandler) GetEntity(c *gin.Context) {
	id, ok := parseID(c, "id", "entity")
	if !ok {
		return
	}

	entity, err := h.entityService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get entity")
		return
	}

	c.JSON(http.StatusOK, entity)
}

// UpdateEntity handles PUT and PATCH /api/entities/:id
// @Summary Update an entity
// @Description Only fields present in the body are changed; null clears an optional field
// @Tags entities
// @Accept json
// @Produce json
// @Param id path int true "Entity ID"
// @Param entity body service.UpdateEntityRequest true "Fields to change"
// @Success 200 {object} service.EntityResponse "Successfully updated entity"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Entity not found"
// @Router /entities/{id} [put]
// @Router /entities/{id} [patch]
func (h *EntityHandler) UpdateEntity(c *gin.Context) {
	id, ok := parseID(c, "id", "entity")
	if !ok {
		return
	}

	var req service.UpdateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	entity, err := h.entityService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update entity")
		return
	}

	c.JSON(http.StatusOK, entity)
}

// DeleteEntity handles DELETE /api/entities/:id
// @Summary Delete an entity
// @Description Removes the entity with all of its accounts, tasks and documents
// @Tags entities
// @Param id path int true "Entity ID"
// @Success 204 "Entity deleted"
// @Failure 404 {object} ErrorResponse "Entity not found"
// @Router /entities/{id} [delete]
func (h *EntityHandler) DeleteEntity(c *gin.Context) {
	id, ok := parseID(c, "id", "entity")
	if !ok {
		return
	}

	if err := h.entityService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete entity")
		return
	}

	c.Status(http.StatusNoContent)
}
