// Package cache implementa el cache en memoria de las vistas derivadas.
package cache

import (
	"sync"

	"github.com/dasava11/santuario-api-sub002/internal/application/inventory"
	"github.com/dasava11/santuario-api-sub002/internal/application/reports"
)

var (
	_ reports.ViewCache         = (*ViewCache)(nil)
	_ inventory.ViewInvalidator = (*ViewCache)(nil)
)

// ViewCache mapa protegido por RWMutex. La invalidación descarta todas las
// entradas: es síncrona respecto a la mutación que la dispara, de modo que
// ninguna lectura posterior al commit puede observar un valor anterior.
type ViewCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewViewCache construye un cache vacío.
func NewViewCache() *ViewCache {
	return &ViewCache{entries: make(map[string]any)}
}

// Get devuelve el valor cacheado para key, si existe.
func (c *ViewCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set guarda el valor bajo key.
func (c *ViewCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate descarta todas las entradas.
func (c *ViewCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
}
