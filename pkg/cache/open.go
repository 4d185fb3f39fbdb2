package cache

import (
	"context"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendNull  = "null"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string // null (default), file or redis
	Dir      string // file backend directory
	RedisURL string // redis backend URL
}

// Open creates the configured backend wrapped with observability hooks.
func Open(ctx context.Context, opts Options) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch opts.Backend {
	case "", BackendNull:
		c = NewNullCache()
	case BackendFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "file cache needs a directory")
		}
		c, err = NewFileCache(opts.Dir)
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "redis cache needs a URL")
		}
		c, err = NewRedisCache(ctx, opts.RedisURL)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want null, file or redis)", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return WithHooks(c), nil
}
