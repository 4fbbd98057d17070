package cache

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestUnreadKey(t *testing.T) {
	assert.Equal(t, "notifications:unread:42", unreadKey(42))
}

func TestNewUnreadCountsDefaultsTTL(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer rdb.Close()

	assert.Equal(t, defaultTTL, NewUnreadCounts(rdb, 0).ttl)
	assert.Equal(t, time.Minute, NewUnreadCounts(rdb, time.Minute).ttl)
}
