package usecase

import (
	"github.com/dasava11/santuario-api-sub002/internal/domain"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// ProviderUseCase lecturas de proveedores.
type ProviderUseCase struct {
	repo repository.ProviderRepository
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{repo: repo}
}

// GetByID obtiene un proveedor por ID.
func (uc *ProviderUseCase) GetByID(id string) (*entity.Provider, error) {
	provider, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrProviderNotFoundOrInactive
	}
	return provider, nil
}

// List lista proveedores con paginación.
func (uc *ProviderUseCase) List(limit, offset int) ([]*entity.Provider, error) {
	return uc.repo.List(limit, offset)
}
