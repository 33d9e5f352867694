package locker

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	lockTTL       = 5 * time.Second
	retryInterval = 50 * time.Millisecond
	maxWait       = 2 * time.Second
)

// libera o lock apenas se o token ainda for nosso
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`

// Subconjunto do client Redis usado pelo lock (*redis.Client satisfaz)
type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type RedisLocker struct {
	client redisClient
}

func NewRedisLocker(client redisClient) *RedisLocker {
	return &RedisLocker{client: client}
}

// WithLock segura um lock por chave (SET NX + TTL) enquanto fn roda.
// Se o lock não for obtido dentro de maxWait, devolve "staff_busy" —
// o cliente simplesmente tenta de novo.
func (l *RedisLocker) WithLock(
	ctx context.Context,
	key string,
	fn func() error,
) error {

	token := uuid.NewString()
	deadline := time.Now().Add(maxWait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return err
		}
		if ok {
			break
		}

		if time.Now().After(deadline) {
			return httperr.ErrBusiness("staff_busy")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	defer l.release(key, token)

	return fn()
}

// release falhando não é fatal (o TTL expira o lock), mas trava a
// agenda do profissional até lá — fica registrado.
func (l *RedisLocker) release(key, token string) {
	err := l.client.Eval(context.Background(), releaseScript, []string{key}, token).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("lock release failed for %s: %v", key, err)
	}
}

// Compile-time check
var _ domain.Locker = (*RedisLocker)(nil)
