package operario

import (
	"context"
	"fmt"
	"time"

	"citas-operario/internal/domain/artifacts"
)

// ListTag marca todas las respuestas de listado. Cerrar una cita invalida
// listados y detalle a la vez.
const ListTag = "citas"

// CachedClient envuelve el Client con la caché por etiquetas. Las lecturas
// sirven de caché; las mutaciones invalidan y la siguiente lectura vuelve al
// servidor. Nunca se parchean entradas a mano.
type CachedClient struct {
	client *Client
	cache  *Cache
}

func NewCachedClient(client *Client, cache *Cache) *CachedClient {
	if cache == nil {
		cache = NewCache(0)
	}
	return &CachedClient{client: client, cache: cache}
}

func (c *CachedClient) Cache() *Cache { return c.cache }

// InfoCitaOperario sirve el detalle desde caché o lo pide al servidor.
func (c *CachedClient) InfoCitaOperario(ctx context.Context, citaID string) (CitaDetail, error) {
	key := "detail:" + citaID
	if v, ok := c.cache.Get(key); ok {
		if d, ok := v.(CitaDetail); ok {
			return d, nil
		}
	}

	d, err := c.client.InfoCitaOperario(ctx, citaID)
	if err != nil {
		return CitaDetail{}, err
	}
	c.cache.Set(key, d, CitaTag(citaID))
	return d, nil
}

// ProximasCitas sirve el listado desde caché o lo pide al servidor.
func (c *CachedClient) ProximasCitas(ctx context.Context) ([]Cita, error) {
	return c.cachedList(ctx, "list:proximas", c.client.ProximasCitas)
}

// CitasPendientesCerrar sirve el listado desde caché o lo pide al servidor.
func (c *CachedClient) CitasPendientesCerrar(ctx context.Context) ([]Cita, error) {
	return c.cachedList(ctx, "list:pendientes", c.client.CitasPendientesCerrar)
}

func (c *CachedClient) cachedList(ctx context.Context, key string, fetch func(context.Context) ([]Cita, error)) ([]Cita, error) {
	if v, ok := c.cache.Get(key); ok {
		if items, ok := v.([]Cita); ok {
			return items, nil
		}
	}
	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, items, ListTag)
	return items, nil
}

// CerrarCita cierra la cita e invalida su detalle y los listados.
func (c *CachedClient) CerrarCita(ctx context.Context, citaID string) (Cita, error) {
	out, err := c.client.CerrarCita(ctx, citaID)
	if err != nil {
		return Cita{}, err
	}
	c.cache.Invalidate(CitaTag(citaID))
	c.cache.Invalidate(ListTag)
	return out, nil
}

// FileName genera el nombre de archivo para una subida capturada en el
// dispositivo, p.ej. firma_1767225600.png.
func FileName(kind Kind, contentType string, now time.Time) string {
	return fmt.Sprintf("%s_%d.%s", kind, now.Unix(), artifacts.ExtensionFor("", contentType))
}
