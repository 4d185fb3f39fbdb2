package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/graphkit/pkg/observability"
)

type observed struct {
	Cache
}

// WithHooks reports every Get and Set on c to the observability cache hooks.
// The key type passed to the hooks is the key's last prefix segment
// ("convert" for "graphkit:convert:ab12...").
func WithHooks(c Cache) Cache {
	return observed{Cache: c}
}

func (o observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (o observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := o.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

func keyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i <= 0 {
		return "default"
	}
	head := key[:i]
	if j := strings.LastIndexByte(head, ':'); j >= 0 {
		head = head[j+1:]
	}
	return head
}
