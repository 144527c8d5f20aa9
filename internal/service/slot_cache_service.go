package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached available-slot listings
	slotCacheKeyPrefix = "slots:available:"

	// Short TTL bounds staleness when a doctor replaces their weekly template;
	// bookings and cancellations invalidate the key explicitly.
	slotCacheTTL = 2 * time.Minute
)

// SlotCacheService caches computed available-slot listings per (doctor, date) in
// Redis. The cache is a read-path optimization only: the booking path always
// re-checks conflicts against the database, so a stale entry can never cause a
// double booking.
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

func slotCacheKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", slotCacheKeyPrefix, doctorID.String(), date.Format("2006-01-02"))
}

// Get returns the cached slot listing and whether it was present. Redis errors
// are logged and reported as a miss so the caller falls back to recomputing.
func (s *SlotCacheService) Get(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, bool) {
	payload, err := s.redisClient.Get(ctx, slotCacheKey(doctorID, date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Failed to read slot cache for doctor %s: %+v", doctorID, err)
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(payload, &slots); err != nil {
		s.log.Warnf("Corrupt slot cache entry for doctor %s: %+v", doctorID, err)
		return nil, false
	}
	return slots, true
}

// Set stores a slot listing with a short TTL. Failures are non-fatal.
func (s *SlotCacheService) Set(ctx context.Context, doctorID uuid.UUID, date time.Time, slots []string) {
	payload, err := json.Marshal(slots)
	if err != nil {
		s.log.Warnf("Failed to encode slot cache for doctor %s: %+v", doctorID, err)
		return
	}

	if err := s.redisClient.Set(ctx, slotCacheKey(doctorID, date), payload, slotCacheTTL).Err(); err != nil {
		s.log.Warnf("Failed to write slot cache for doctor %s: %+v", doctorID, err)
	}
}

// Invalidate drops the cached listing after a booking or a status change frees
// or occupies a slot. Failures are non-fatal; the TTL bounds staleness anyway.
func (s *SlotCacheService) Invalidate(ctx context.Context, doctorID uuid.UUID, date time.Time) {
	if err := s.redisClient.Del(ctx, slotCacheKey(doctorID, date)).Err(); err != nil {
		s.log.Warnf("Failed to invalidate slot cache for doctor %s: %+v", doctorID, err)
	}
}
