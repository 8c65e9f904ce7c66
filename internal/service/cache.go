// cache.go — LRU-кэш записей артефактов с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qs_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш записей артефактов.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qs_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша записей артефактов.",
	})
)

// CacheService — LRU-кэш записей артефактов.
// Записи неизменяемы, кроме метки, поэтому кэш инвалидируется
// только при смене метки и удалении.
type CacheService struct {
	cache *expirable.LRU[string, *model.Artifact]
}

// NewCacheService создаёт кэш на maxSize записей с временем жизни ttl.
func NewCacheService(maxSize int, ttl time.Duration) *CacheService {
	return &CacheService{cache: expirable.NewLRU[string, *model.Artifact](maxSize, nil, ttl)}
}

// Get возвращает запись по ID артефакта и обновляет метрики hit/miss.
func (c *CacheService) Get(id string) (*model.Artifact, bool) {
	val, ok := c.cache.Get(id)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет запись.
func (c *CacheService) Set(a *model.Artifact) {
	c.cache.Add(a.ID, a)
}

// Delete удаляет запись.
func (c *CacheService) Delete(id string) {
	c.cache.Remove(id)
}

// Len возвращает количество записей.
func (c *CacheService) Len() int {
	return c.cache.Len()
}
