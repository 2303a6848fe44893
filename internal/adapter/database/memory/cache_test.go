package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestIncrementWithinWindow(t *testing.T) {
	RegisterTestingT(t)
	repo := NewCacheRepository()

	count, reset, err := repo.Increment(context.Background(), "k", time.Minute)
	Expect(err).To(BeNil())
	Expect(count).To(Equal(int64(1)))

	count, again, err := repo.Increment(context.Background(), "k", time.Minute)
	Expect(err).To(BeNil())
	Expect(count).To(Equal(int64(2)))
	Expect(again).To(Equal(reset))
}

func TestIncrementStartsNewWindow(t *testing.T) {
	RegisterTestingT(t)
	now := time.Now()
	repo := &CacheRepository{cache: NewCacheRepository().(*CacheRepository).cache, now: func() time.Time { return now }}

	repo.Increment(context.Background(), "k", time.Second)
	repo.Increment(context.Background(), "k", time.Second)

	now = now.Add(2 * time.Second)

	count, _, err := repo.Increment(context.Background(), "k", time.Second)
	Expect(err).To(BeNil())
	Expect(count).To(Equal(int64(1)))
}

func TestIncrementConcurrent(t *testing.T) {
	RegisterTestingT(t)
	repo := NewCacheRepository().(*CacheRepository)

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			repo.Increment(context.Background(), "k", time.Minute)
		})
	}
	wg.Wait()

	count, _, _ := repo.Increment(context.Background(), "k", time.Minute)
	Expect(count).To(Equal(int64(51)))
}
