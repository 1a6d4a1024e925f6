package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefixes for slot listing cache
	slotSearchKeyPrefix = "slots:search:"
	slotDoctorKeyPrefix = "slots:doctor:"

	// Listings go stale fast as patients book, keep the TTL short.
	slotCacheTTL = 30 * time.Second

	redisOpTimeout = 5 * time.Second
)

// SlotCacheService caches available-slot listings in Redis. The cache is
// best-effort: Redis failures degrade to direct DB reads, never to errors.
//
// The database stays the source of truth for booking decisions. Cached
// listings may briefly show a slot that just filled up; the booking
// transaction rejects those.
type SlotCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotCacheService(redisClient *redis.Client, log *logrus.Logger) *SlotCacheService {
	return &SlotCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

func searchKey(filter entity.SlotFilter) string {
	return fmt.Sprintf("%s%s:%s", slotSearchKeyPrefix, filter.Date, filter.Specialty)
}

func doctorKey(doctorID uuid.UUID, availableOnly bool) string {
	return fmt.Sprintf("%s%s:%t", slotDoctorKeyPrefix, doctorID, availableOnly)
}

// GetSearch returns a cached available-slot listing, or nil on miss.
func (s *SlotCacheService) GetSearch(ctx context.Context, filter entity.SlotFilter) []dto.SlotResponse {
	return s.get(ctx, searchKey(filter))
}

// SetSearch stores an available-slot listing under the filter's key.
func (s *SlotCacheService) SetSearch(ctx context.Context, filter entity.SlotFilter, slots []dto.SlotResponse) {
	s.set(ctx, searchKey(filter), slots)
}

// GetDoctor returns a cached per-doctor slot listing, or nil on miss.
func (s *SlotCacheService) GetDoctor(ctx context.Context, doctorID uuid.UUID, availableOnly bool) []dto.SlotResponse {
	return s.get(ctx, doctorKey(doctorID, availableOnly))
}

// SetDoctor stores a per-doctor slot listing.
func (s *SlotCacheService) SetDoctor(ctx context.Context, doctorID uuid.UUID, availableOnly bool, slots []dto.SlotResponse) {
	s.set(ctx, doctorKey(doctorID, availableOnly), slots)
}

// InvalidateDoctor drops the per-doctor listings and all search listings
// after a slot or appointment mutation for that doctor.
func (s *SlotCacheService) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	keys := []string{
		doctorKey(doctorID, true),
		doctorKey(doctorID, false),
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to invalidate doctor slot cache %s: %+v", doctorID, err)
	}

	// Search listings are keyed by date and specialty, not doctor. Scan and
	// drop them all; the key space is small and the TTL is short anyway.
	iter := s.redisClient.Scan(ctx, 0, slotSearchKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			s.log.Warnf("Failed to delete slot search cache key %s: %+v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		s.log.Warnf("Failed to scan slot search cache keys: %+v", err)
	}
}

func (s *SlotCacheService) get(ctx context.Context, key string) []dto.SlotResponse {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	data, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read slot cache %s: %+v", key, err)
		}
		return nil
	}

	var slots []dto.SlotResponse
	if err := json.Unmarshal(data, &slots); err != nil {
		s.log.Warnf("Corrupt slot cache entry %s, dropping: %+v", key, err)
		s.redisClient.Del(ctx, key)
		return nil
	}
	return slots
}

func (s *SlotCacheService) set(ctx context.Context, key string, slots []dto.SlotResponse) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	data, err := json.Marshal(slots)
	if err != nil {
		s.log.Warnf("Failed to marshal slot cache %s: %+v", key, err)
		return
	}
	if err := s.redisClient.Set(ctx, key, data, slotCacheTTL).Err(); err != nil {
		s.log.Warnf("Failed to write slot cache %s: %+v", key, err)
	}
}
