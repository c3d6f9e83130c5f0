package store

import (
	"context"

	"github.com/go-redis/redis/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type redisStore struct {
	client *redis.Client
	prefix string
	log    *log.Entry
}

// NewRedisStore connects to Redis and returns a Store whose transactions
// WATCH every key they read and commit with MULTI/EXEC.
func NewRedisStore(opts RedisOptions) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if _, err := client.Ping().Result(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "failed to ping redis at %s", opts.Addr)
	}

	return &redisStore{
		client: client,
		prefix: opts.Prefix,
		log:    log.WithField("component", "redis_store"),
	}, nil
}

func (r *redisStore) key(k string) string {
	return r.prefix + k
}

func (r *redisStore) Update(ctx context.Context, fn func(Txn) error) error {
	client := r.client.WithContext(ctx)

	err := client.Watch(func(tx *redis.Tx) error {
		t := newTxn(func(k string) ([]byte, bool, error) {
			key := r.key(k)
			if err := tx.Watch(key).Err(); err != nil {
				return nil, false, errors.Wrapf(err, "failed to watch %s", key)
			}
			return r.fetch(tx.Get(key))
		})

		if err := fn(t); err != nil {
			return err
		}
		if len(t.writes) == 0 {
			return nil
		}

		_, err := tx.TxPipelined(func(pipe redis.Pipeliner) error {
			for _, k := range t.keys() {
				pipe.Set(r.key(k), t.writes[k], 0)
			}
			return nil
		})
		if err == redis.TxFailedErr {
			return ErrConflict
		}
		if err != nil {
			return errors.Wrap(err, "failed to commit transaction to redis")
		}

		r.log.Debugf("committed %d keys", len(t.writes))
		return nil
	})

	return err
}

func (r *redisStore) View(ctx context.Context, fn func(Txn) error) error {
	client := r.client.WithContext(ctx)
	return fn(newTxn(func(k string) ([]byte, bool, error) {
		return r.fetch(client.Get(r.key(k)))
	}))
}

func (r *redisStore) fetch(cmd *redis.StringCmd) ([]byte, bool, error) {
	bs, err := cmd.Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to read from redis")
	}
	return bs, true, nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
