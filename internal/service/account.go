package service

import (
	"context"
	"errors"
	"fmt"

	"entity-tracker-backend/internal/database/models"
	apperrors "entity-tracker-backend/internal/errors"
	"entity-tracker-backend/internal/logger"
	"entity-tracker-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CredentialSealer protects stored account passwords
type CredentialSealer interface {
	Seal(plaintext string) (string, error)
	Open(stored string) (string, error)
}

// AccountService handles business logic for accounts
type AccountService struct {
	repo      repository.AccountRepositoryInterface
	sealer    CredentialSealer
	validator *validator.Validate
}

// NewAccountService creates a new account service
func NewAccountService(repo repository.AccountRepositoryInterface, sealer CredentialSealer, validator *validator.Validate) *AccountService {
	return &AccountService{
		repo:      repo,
		sealer:    sealer,
		validator: validator,
	}
}

// CreateAccountRequest represents the request to create an account
type CreateAccountRequest struct {
	AccountName   string   `json:"account_name" validate:"required,notblank,max=100"`
	AccountNumber *string  `json:"account_number" validate:"omitempty,max=50"`
	Balance       *float64 `json:"balance"`
	AccountType   *string  `json:"account_type" validate:"omitempty,max=50"`
	Username      *string  `json:"username" validate:"omitempty,max=100"`
	Password      *string  `json:"password"`
	AccountURL    *string  `json:"account_url" validate:"omitempty,max=500"`
	Notes         *string  `json:"notes"`
}

// UpdateAccountRequest represents a partial update of an account
type UpdateAccountRequest struct {
	AccountName   Optional[string]  `json:"account_name" swaggertype:"string"`
	AccountNumber Optional[string]  `json:"account_number" swaggertype:"string"`
	Balance       Optional[float64] `json:"balance" swaggertype:"number"`
	AccountType   Optional[string]  `json:"account_type" swaggertype:"string"`
	Username      Optional[string]  `json:"username" swaggertype:"string"`
	Password      Optional[string]  `json:"password" swaggertype:"string"`
	AccountURL    Optional[string]  `json:"account_url" swaggertype:"string"`
	Notes         Optional[string]  `json:"notes" swaggertype:"string"`
}

// Create creates a new account under an entity
func (s *AccountService) Create(ctx context.Context, entityID uint, req *CreateAccountRequest) (*AccountResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	password, err := s.seal(req.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		EntityID:      entityID,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		AccountType:   req.AccountType,
		Username:      req.Username,
		Password:      password,
		AccountURL:    req.AccountURL,
		Notes:         req.Notes,
	}
	if req.Balance != nil {
		account.Balance = *req.Balance
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return toAccountResponse(account), nil
}

// GetByID retrieves an account by ID
func (s *AccountService) GetByID(ctx context.Context, id uint) (*AccountResponse, error) {
	account, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// GetByEntityID retrieves the accounts of an entity
func (s *AccountService) GetByEntityID(ctx context.Context, entityID uint) ([]AccountResponse, error) {
	accounts, err := s.repo.GetByEntityID(ctx, entityID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return toAccountResponses(accounts), nil
}

// Update applies a partial update to an account
func (s *AccountService) Update(ctx context.Context, id uint, req *UpdateAccountRequest) (*AccountResponse, error) {
	p := newPatch()
	p.required("account_name", req.AccountName, 100)
	p.nullable("account_number", req.AccountNumber, 50)
	p.number("balance", req.Balance, false, true)
	p.nullable("account_type", req.AccountType, 50)
	p.nullable("username", req.Username, 100)
	p.nullable("account_url", req.AccountURL, 500)
	p.nullable("notes", req.Notes, 0)
	if req.Password.HasValue() {
		sealed, err := s.sealer.Seal(req.Password.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to seal password: %w", err)
		}
		p.set("password", sealed)
	} else if req.Password.Set {
		p.set("password", nil)
	}
	updates, err := p.result()
	if err != nil {
		return nil, err
	}

	account, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return toAccountResponse(account), nil
}

// Delete deletes an account
func (s *AccountService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// RevealCredentials returns the stored username and password in clear text.
// Every call is written to the audit log.
func (s *AccountService) RevealCredentials(ctx context.Context, id uint) (*CredentialsResponse, error) {
	account, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &CredentialsResponse{AccountID: account.ID, Username: account.Username}
	if account.Password != nil {
		plain, err := s.sealer.Open(*account.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to open password: %w", err)
		}
		resp.Password = &plain
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"audit":      true,
		"account_id": account.ID,
		"entity_id":  account.EntityID,
	}).Info("Account credentials revealed")
	return resp, nil
}

func (s *AccountService) get(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *AccountService) seal(password *string) (*string, error) {
	if password == nil {
		return nil, nil
	}
	sealed, err := s.sealer.Seal(*password)
	if err != nil {
		return nil, fmt.Errorf("failed to seal password: %w", err)
	}
	return &sealed, nil
}
