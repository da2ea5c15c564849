package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/temboplus/afloat-go/storage"
)

var _ storage.KeyValue = (*Store)(nil)

func TestStoreKeyNamespace(t *testing.T) {
	assert.Equal(t, "afloat:session:user", NewStore(nil, "afloat:session", 0).key("user"))
	assert.Equal(t, "user", NewStore(nil, "", 0).key("user"))
}

func TestStoreSurfacesConnectionErrors(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := NewStore(client, "test", 0)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "user")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, s.Set(ctx, "user", "{}"))
	assert.Error(t, s.Delete(ctx, "user"))
}
