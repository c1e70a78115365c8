package tenant

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"pagecore/internal/domain/tenant"
	"pagecore/internal/store/repositories"
)

// OnboardingRequest represents tenant onboarding data
type OnboardingRequest struct {
	Name       string `json:"name"`
	APIKeyName string `json:"apiKeyName,omitempty"`
}

// OnboardingResponse represents tenant onboarding result
type OnboardingResponse struct {
	TenantID   int64  `json:"tenantId"`
	APIKey     string `json:"apiKey"` // plaintext, shown once
	APIKeyName string `json:"apiKeyName"`
}

// Service handles tenant management
type Service struct {
	tenantRepo repositories.TenantRepository
}

// NewService creates a new tenant service
func NewService(tenantRepo repositories.TenantRepository) *Service {
	return &Service{tenantRepo: tenantRepo}
}

// OnboardTenant creates a new tenant and its first API key
func (s *Service) OnboardTenant(ctx context.Context, req OnboardingRequest) (*OnboardingResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "tenant name is required"}
	}

	newTenant, err := tenant.NewTenant(req.Name)
	if err != nil {
		return nil, &ValidationError{Field: "name", Message: err.Error()}
	}

	if err := s.tenantRepo.Save(ctx, newTenant); err != nil {
		return nil, &ServiceError{Op: "save_tenant", Err: err}
	}

	apiKey, keyName, err := s.createAPIKey(ctx, newTenant.ID, req.APIKeyName)
	if err != nil {
		return nil, &ServiceError{Op: "create_api_key", Err: err}
	}

	return &OnboardingResponse{
		TenantID:   newTenant.ID,
		APIKey:     apiKey,
		APIKeyName: keyName,
	}, nil
}

// createAPIKey generates and stores a new API key for the tenant
func (s *Service) createAPIKey(ctx context.Context, tenantID int64, keyName string) (string, string, error) {
	if keyName == "" {
		keyName = "default"
	}

	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate API key: %w", err)
	}
	apiKey := "pk_" + hex.EncodeToString(keyBytes)

	apiKeyObj, err := tenant.NewAPIKey(tenantID, keyName, HashAPIKey(apiKey))
	if err != nil {
		return "", "", err
	}

	if err := s.tenantRepo.SaveAPIKey(ctx, apiKeyObj); err != nil {
		return "", "", err
	}

	return apiKey, keyName, nil
}

// GetTenantByAPIKey retrieves the active tenant owning an API key
func (s *Service) GetTenantByAPIKey(ctx context.Context, apiKey string) (*tenant.Tenant, error) {
	return s.tenantRepo.FindByAPIKeyHash(ctx, HashAPIKey(apiKey))
}

// HashAPIKey creates the SHA-256 hash under which API keys are stored
func HashAPIKey(apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(hash[:])
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Field, e.Message)
}

// ServiceError represents a service operation error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("tenant service [%s]: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
