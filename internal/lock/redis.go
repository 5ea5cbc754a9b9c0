package lock

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Locker serializa a criação de agendamentos por petshop. A janela
// validar-depois-gravar fica protegida mesmo com vários processos da API.
type Locker interface {
	Acquire(ctx context.Context, petshopID uint) (release func(), err error)
}

const (
	lockTTL      = 5 * time.Second
	lockRetryGap = 50 * time.Millisecond
	lockAttempts = 20
)

// Script de release: só apaga a chave se o token ainda for nosso
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, petshopID uint) (func(), error) {
	key := fmt.Sprintf("booking:lock:%d", petshopID)
	token := uuid.NewString()

	for i := 0; i < lockAttempts; i++ {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				if _, err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Result(); err != nil {
					log.Println("lock release error:", err)
				}
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryGap):
		}
	}

	return nil, fmt.Errorf("lock: petshop %d ocupado", petshopID)
}

// NoopLocker é usado quando o Redis não está configurado; a proteção
// cai para a revalidação transacional no banco.
type NoopLocker struct{}

func (NoopLocker) Acquire(ctx context.Context, petshopID uint) (func(), error) {
	return func() {}, nil
}
