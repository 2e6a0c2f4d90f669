package repository

import (
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
)

// ReceptionRepository define el puerto de persistencia para recepciones y sus líneas.
type ReceptionRepository interface {
	// Create persiste cabecera y líneas. Debe invocarse con el repo atado a una tx.
	Create(reception *entity.Reception, items []*entity.ReceptionItem) error
	GetByID(id string) (*entity.Reception, error)
	// GetForUpdate bloquea la fila de la recepción para la transición de estado.
	GetForUpdate(id string) (*entity.Reception, error)
	GetItems(receptionID string) ([]*entity.ReceptionItem, error)
	ExistsByProviderAndInvoice(providerID, numeroFactura string) (bool, error)
	// Update persiste estado, observaciones y updated_at. Las líneas son inmutables.
	Update(reception *entity.Reception) error
	List(estado, providerID string, limit, offset int) ([]*entity.Reception, error)
}
