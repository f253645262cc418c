package auth

import (
	"context"
	"sync"
	"time"
)

// RevocationStore 刷新令牌吊销表：轮换后旧 jti 在剩余有效期内拒收。
// 生产用 Redis 实现，开发/测试用内存实现。
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type MemoryRevocationStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{expires: make(map[string]time.Time)}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires[jti] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.expires[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		// 自然过期的条目顺手清掉
		delete(s.expires, jti)
		return false, nil
	}
	return true, nil
}
