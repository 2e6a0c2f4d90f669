package repository

import "github.com/dasava11/santuario-api-sub002/internal/domain/entity"

// ProviderRepository define el puerto de lectura de proveedores.
// El alta y edición de proveedores es responsabilidad de otro módulo.
type ProviderRepository interface {
	GetByID(id string) (*entity.Provider, error)
	List(limit, offset int) ([]*entity.Provider, error)
}
