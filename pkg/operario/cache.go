package operario

import (
	"sync"
	"time"
)

// Cache es una caché de respuestas por clave con invalidación por etiqueta.
// Cada entrada lleva las etiquetas que la vuelven obsoleta: el detalle de la
// cita X se guarda con la etiqueta "cita:X" y subir cualquier artefacto a X
// invalida esa etiqueta, con lo que la siguiente lectura va al servidor.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	value     any
	tags      []string
	expiresAt time.Time
}

// NewCache crea una caché con TTL por entrada. ttl <= 0 desactiva la
// caducidad por tiempo (solo invalidación por etiqueta).
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get devuelve el valor cacheado si existe y no caducó.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set guarda un valor con sus etiquetas de invalidación.
func (c *Cache) Set(key string, value any, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := cacheEntry{value: value, tags: tags}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.entries[key] = e
}

// Invalidate elimina todas las entradas marcadas con la etiqueta.
func (c *Cache) Invalidate(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		for _, t := range e.tags {
			if t == tag {
				delete(c.entries, k)
				break
			}
		}
	}
}

// InvalidateAll vacía la caché (p.ej. al cambiar de sesión).
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// CitaTag es la etiqueta de invalidación de una cita concreta.
func CitaTag(citaID string) string {
	return "cita:" + citaID
}
