package handlers

import (
	"net/http"

	"entity-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles HTTP requests for accounts
type AccountHandler struct {
	accountService service.AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService service.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// ListEntityAccounts handles GET /api/entities/:id/accounts
// @Summary List accounts of an entity
// @Tags accounts
// @Produce json
// @Param id path int true "Entity ID"
// @Success 200 {array} service.AccountResponse "Successfully retrieved accounts"
// @Failure 404 {object} ErrorResponse "Entity not found"
// @Router /entities/{id}/accounts [get]
func (h *AccountHandler) ListEntityAccounts(c *gin.Context) {
	entityID, ok := parseID(c, "id", "entity")
	if !ok {
		return
	}

	accounts, err := h.accountService.GetByEntityID(c.Request.Context(), entityID)
	if err != nil {
		respondError(c, err, "Failed to get accounts")
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// CreateAccount handles POST /api/entities/:id/accounts
// @Summary Create an account
// @Description The password, if given, is stored sealed and never returned by this endpoint
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Entity ID"
// @Param account body service.CreateAccountRequest true "Account data"
// @Success 201 {object} service.AccountResponse "Successfully created account"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Entity not found"
// @Router /entities/{id}/accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	entityID, ok := parseID(c, "id", "entity")
	if !ok {
		return
	}

	var req service.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), entityID, &req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, account)
}

// GetAccount handles GET /api/accounts/:id
// @Summary Get account by ID
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} service.AccountResponse "Successfully retrieved account"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := parseID(c, "id", "account")
	if !ok {
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateAccount handles PUT and PATCH /api/accounts/:id
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param account body service.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} service.AccountResponse "Successfully updated account"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /accounts/{id} [put]
// @Router /accounts/{id} [patch]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseID(c, "id", "account")
	if !ok {
		return
	}

	var req service.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, account)
}

// DeleteAccount handles DELETE /api/accounts/:id
// @Summary Delete an account
// @Tags accounts
// @Param id path int true "Account ID"
// @Success 204 "Account deleted"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseID(c, "id", "account")
	if !ok {
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCredentials handles GET /api/accounts/:id/credentials
// @Summary Reveal account credentials
// @Description Returns the stored username and password in clear text. Each call is audit logged.
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} service.CredentialsResponse "Credentials"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /accounts/{id}/credentials [get]
func (h *AccountHandler) GetCredentials(c *gin.Context) {
	id, ok := parseID(c, "id", "account")
	if !ok {
		return
	}

	creds, err := h.accountService.RevealCredentials(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to reveal credentials")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, creds)
}
