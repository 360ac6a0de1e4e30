// Package lock реализует блокировку обработки листа ожидания через Redis
// Одна блокировка на курс закрывает гонку: два почти одновременных триггера
// (две отмены) не могут оба выдать одно и то же освободившееся место
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CourseLocker интерфейс блокировки обработки на уровне курса
type CourseLocker interface {
	Lock(ctx context.Context, courseID int64) (bool, error)
	Unlock(ctx context.Context, courseID int64) error
}

// RedisLock блокировка через Redis SET NX с TTL
type RedisLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLock создает блокировку и проверяет соединение с Redis
func NewRedisLock(addr, password string, db int, ttl, dialTimeout time.Duration) (*RedisLock, error) {
	const op = "lock.NewRedisLock"

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisLock{client: client, ttl: ttl}, nil
}

func lockKey(courseID int64) string {
	return fmt.Sprintf("waitlist:course:%d", courseID)
}

// Lock пытается захватить блокировку курса
// Возвращает false, если блокировка уже захвачена другим вызовом
// TTL гарантирует освобождение, если процесс упал не разблокировав
func (r *RedisLock) Lock(ctx context.Context, courseID int64) (bool, error) {
	const op = "lock.RedisLock.Lock"

	acquired, err := r.client.SetNX(ctx, lockKey(courseID), "1", r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return acquired, nil
}

// Unlock освобождает блокировку курса
func (r *RedisLock) Unlock(ctx context.Context, courseID int64) error {
	const op = "lock.RedisLock.Unlock"

	if _, err := r.client.Del(ctx, lockKey(courseID)).Result(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает соединение с Redis
func (r *RedisLock) Close() error {
	return r.client.Close()
}

// NoopLock блокировка-заглушка, применяется когда Redis выключен в конфигурации
// Гонка конкурентных триггеров в этом режиме не закрыта -полагаемся на
// политику одной аллокации за вызов и сериализуемую транзакцию конвертации
type NoopLock struct{}

// Lock всегда успешно захватывает
func (NoopLock) Lock(ctx context.Context, courseID int64) (bool, error) {
	return true, nil
}

// Unlock ничего не делает
func (NoopLock) Unlock(ctx context.Context, courseID int64) error {
	return nil
}
