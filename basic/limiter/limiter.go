package limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// PluginLimiter 单个插件的限流器，按用户分别维护令牌桶
type PluginLimiter struct {
	Key string // 插件Key，仅用于日志

	mutex sync.Mutex
	cd    time.Duration
	burst int
	users map[int64]*userBucket
}

type userBucket struct {
	limiter *rate.Limiter
	lastGet time.Time
}

// NewPluginLimiter 新建PluginLimiter用于单个插件的限流
func NewPluginLimiter(cd time.Duration, burst int) *PluginLimiter {
	pl := &PluginLimiter{
		cd:    cd,
		burst: burst,
		users: make(map[int64]*userBucket),
	}
	go pl.gcLoop()
	return pl
}

// GetCD 获取当前CD
func (pl *PluginLimiter) GetCD() time.Duration {
	pl.mutex.Lock()
	defer pl.mutex.Unlock()
	return pl.cd
}

// ResetCD 重置CD时间长度，已有用户的令牌桶在回收后按新CD重建
func (pl *PluginLimiter) ResetCD(cd time.Duration) {
	pl.mutex.Lock()
	pl.cd = cd
	pl.mutex.Unlock()
}

// Allow 判断指定用户能否拿到令牌
func (pl *PluginLimiter) Allow(userID int64) bool {
	pl.mutex.Lock()
	bucket, ok := pl.users[userID]
	if !ok {
		bucket = &userBucket{limiter: rate.NewLimiter(rate.Every(pl.cd), pl.burst)}
		pl.users[userID] = bucket
	}
	bucket.lastGet = time.Now()
	pl.mutex.Unlock()
	return bucket.limiter.Allow()
}

// 定期回收长时间未活动用户的令牌桶
func (pl *PluginLimiter) gcLoop() {
	for {
		ttl := pl.GetCD() * 3
		if ttl < time.Minute {
			ttl = time.Minute
		}
		time.Sleep(ttl)
		deadline := time.Now().Add(-ttl)
		pl.mutex.Lock()
		for userID, bucket := range pl.users {
			if bucket.lastGet.Before(deadline) {
				delete(pl.users, userID)
			}
		}
		pl.mutex.Unlock()
	}
}
