package orghierarchy

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeKeyPrefix    = "org:employee:"
	AreaKeyPrefix        = "org:area:"
	RolesKeyPrefix       = "org:roles:"
	DeptManagerKeyPrefix = "org:dept_manager:"
)

// DefaultLoadTimeout bounds a shared directory load once it no longer
// belongs to any single caller.
const DefaultLoadTimeout = 5 * time.Second

type cachedDirectory struct {
	next        Directory
	rdb         *redis.Client
	ttl         time.Duration
	loadTimeout time.Duration
	sf          *singleflight.Group
	logger      *zap.Logger
}

// NewCachedDirectory puts a read-through Redis cache in front of next.
// Lookup failures are never cached; a Redis outage degrades to direct reads.
func NewCachedDirectory(next Directory, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Directory {
	l := zap.L().Named("orghierarchy.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("orghierarchy.cache")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &cachedDirectory{
		next:        next,
		rdb:         rdb,
		ttl:         ttl,
		loadTimeout: DefaultLoadTimeout,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func (d *cachedDirectory) GetEmployee(ctx context.Context, companyID, ref string) (*Employee, error) {
	return readThrough(ctx, d, EmployeeKeyPrefix+companyID+":"+ref, func(ctx context.Context) (*Employee, error) {
		return d.next.GetEmployee(ctx, companyID, ref)
	})
}

func (d *cachedDirectory) GetAreaOf(ctx context.Context, companyID, employeeID string) (*AreaInfo, error) {
	return readThrough(ctx, d, AreaKeyPrefix+companyID+":"+employeeID, func(ctx context.Context) (*AreaInfo, error) {
		return d.next.GetAreaOf(ctx, companyID, employeeID)
	})
}

func (d *cachedDirectory) GetManagerOf(ctx context.Context, companyID, departmentNameOrID string) (string, error) {
	key := DeptManagerKeyPrefix + companyID + ":" + NormalizeName(departmentNameOrID)
	return readThrough(ctx, d, key, func(ctx context.Context) (string, error) {
		return d.next.GetManagerOf(ctx, companyID, departmentNameOrID)
	})
}

func (d *cachedDirectory) GetRolesOf(ctx context.Context, companyID, employeeID string) ([]string, error) {
	return readThrough(ctx, d, RolesKeyPrefix+companyID+":"+employeeID, func(ctx context.Context) ([]string, error) {
		return d.next.GetRolesOf(ctx, companyID, employeeID)
	})
}

// readThrough shares one load per key between concurrent callers. The load
// runs detached from the caller that started it, so a cancelled caller does
// not fail the others waiting on the same key.
func readThrough[T any](ctx context.Context, d *cachedDirectory, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if d.rdb != nil {
		raw, err := d.rdb.Get(ctx, key).Result()
		switch {
		case err == nil:
			var v T
			if json.Unmarshal([]byte(raw), &v) == nil {
				return v, nil
			}
		case !errors.Is(err, redis.Nil):
			d.logger.Warn("org cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	ch := d.sf.DoChan(key, func() (interface{}, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.loadTimeout)
		defer cancel()

		v, err := load(lctx)
		if err != nil {
			return nil, err
		}
		if d.rdb != nil {
			if data, err := json.Marshal(v); err == nil {
				if err := d.rdb.Set(lctx, key, data, d.ttl).Err(); err != nil {
					d.logger.Warn("org cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
