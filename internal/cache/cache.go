package cache

import (
	"context"
	"time"
)

// Cache — инжектируемый кэш с TTL. Используется точечно, например для
// индикаторов «есть свободные окна» по дням; движок работает и без него.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
