package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "portal:session:"

// redisSessions stores each part of a session under its own key. The status
// key expires together with the status, so redis does the hiding.
type redisSessions struct {
	client redis.UniversalClient
	now    func() time.Time
}

func newRedisSessions(client redis.UniversalClient, now func() time.Time) *redisSessions {
	if now == nil {
		now = time.Now
	}
	return &redisSessions{client: client, now: now}
}

func redisKey(id, part string) string {
	return redisKeyPrefix + id + ":" + part
}

func (r *redisSessions) load(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisSessions) save(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, payload, ttl).Err()
}

func (r *redisSessions) LoadStatus(ctx context.Context, id string) (Status, error) {
	var status Status
	if _, err := r.load(ctx, redisKey(id, "status"), &status); err != nil {
		return Status{}, err
	}
	return status, nil
}

func (r *redisSessions) SaveStatus(ctx context.Context, id string, status Status) error {
	ttl := status.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.client.Del(ctx, redisKey(id, "status")).Err()
	}
	return r.save(ctx, redisKey(id, "status"), status, ttl)
}

func (r *redisSessions) LoadDraft(ctx context.Context, id string) (FormDraft, error) {
	var draft FormDraft
	if _, err := r.load(ctx, redisKey(id, "draft"), &draft); err != nil {
		return FormDraft{}, err
	}
	return draft, nil
}

func (r *redisSessions) SaveDraft(ctx context.Context, id string, draft FormDraft) error {
	if draft == (FormDraft{}) {
		return r.client.Del(ctx, redisKey(id, "draft")).Err()
	}
	return r.save(ctx, redisKey(id, "draft"), draft, sessionIdleTTL)
}

func (r *redisSessions) SavePage(ctx context.Context, id string, page PageState) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisKey(id, "page"), payload, sessionIdleTTL)
		pipe.Del(ctx, redisKey(id, "held"))
		return nil
	})
	return err
}

func (r *redisSessions) HoldPage(ctx context.Context, id string) error {
	return r.client.Set(ctx, redisKey(id, "held"), "1", sessionIdleTTL).Err()
}

func (r *redisSessions) TakeHeldPage(ctx context.Context, id string) (PageState, bool, error) {
	err := r.client.GetDel(ctx, redisKey(id, "held")).Err()
	if errors.Is(err, redis.Nil) {
		return PageState{}, false, nil
	}
	if err != nil {
		return PageState{}, false, err
	}
	var page PageState
	ok, err := r.load(ctx, redisKey(id, "page"), &page)
	if err != nil {
		return PageState{}, false, err
	}
	return page, ok, nil
}
