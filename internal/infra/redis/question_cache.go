package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ukkpower/Netflix-Trivia/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionSource fetches question sets from a backing provider.
type QuestionSource interface {
	Fetch(ctx context.Context, category int, difficulty domain.Difficulty, count int) ([]domain.SourceQuestion, error)
}

// QuestionCache stores fetched question sets in Redis as JSON and falls
// back to the wrapped source on cache miss.
// Sets are stored as: SET trivia:questions:{category}:{difficulty}:{count} {json} EX ttl
type QuestionCache struct {
	client *redis.Client
	source QuestionSource
	ttl    time.Duration
	sf     singleflight.Group

	// Fills for different keys run concurrently, so the jitter source
	// needs its own guard.
	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuestionCache(client *redis.Client, source QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) Fetch(ctx context.Context, category int, difficulty domain.Difficulty, count int) ([]domain.SourceQuestion, error) {
	key := c.key(category, difficulty, count)

	if cached, err := c.client.Get(ctx, key).Bytes(); err == nil {
		if questions, err := decodeSet(cached); err == nil {
			return questions, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if cached, err := c.client.Get(ctx, key).Bytes(); err == nil {
			if questions, err := decodeSet(cached); err == nil {
				return questions, nil
			}
		}

		questions, err := c.source.Fetch(ctx, category, difficulty, count)
		if err != nil {
			return nil, err
		}

		if encoded, err := json.Marshal(questions); err == nil {
			_ = c.client.Set(ctx, key, encoded, c.ttlWithJitter()).Err()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.SourceQuestion), nil
}

func (c *QuestionCache) key(category int, difficulty domain.Difficulty, count int) string {
	return fmt.Sprintf("trivia:questions:%d:%s:%d", category, difficulty, count)
}

func decodeSet(raw []byte) ([]domain.SourceQuestion, error) {
	var questions []domain.SourceQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
