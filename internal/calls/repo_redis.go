package calls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Key layout, relative to the configured prefix:
//
//	<prefix>:call:<id>   hash {id, start, data}; data is the JSON-encoded CallRecord
//	<prefix>:calls       sorted set of ids scored by call start (unix ms)
//	<prefix>:leads       list of JSON-encoded Lead rows
//
// insertIfAbsentScript writes the hash and index entry only when the hash is missing.
// Returns 1 if inserted, 0 if the id already exists.
var insertIfAbsentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return 0
end
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'start', ARGV[2], 'data', ARGV[3])
redis.call('ZADD', KEYS[2], ARGV[2], ARGV[1])
return 1
`)

// RedisRepo is a Store and LeadStore backed by Redis.
type RedisRepo struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisRepo(rdb *redis.Client, prefix string) *RedisRepo {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "callboard"
	}
	return &RedisRepo{rdb: rdb, prefix: prefix}
}

func (r *RedisRepo) callKey(id string) string { return r.prefix + ":call:" + id }
func (r *RedisRepo) indexKey() string         { return r.prefix + ":calls" }
func (r *RedisRepo) leadsKey() string         { return r.prefix + ":leads" }

func (r *RedisRepo) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.rdb.Exists(ctx, r.callKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("calls: redis exists %s: %w", id, err)
	}
	return n == 1, nil
}

func (r *RedisRepo) Insert(ctx context.Context, rec CallRecord) (bool, error) {
	if rec.ID == "" {
		return false, ErrInvalidRecord
	}
	data, err := encodeRecord(rec)
	if err != nil {
		return false, err
	}
	res, err := insertIfAbsentScript.Run(ctx, r.rdb,
		[]string{r.callKey(rec.ID), r.indexKey()},
		rec.ID, rec.CallStart.UnixMilli(), data,
	).Int()
	if err != nil {
		return false, fmt.Errorf("calls: redis insert %s: %w", rec.ID, err)
	}
	return res == 1, nil
}

func (r *RedisRepo) ListAll(ctx context.Context) ([]CallRecord, error) {
	ids, err := r.rdb.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("calls: redis index: %w", err)
	}
	out := make([]CallRecord, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	pipe := r.rdb.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGet(ctx, r.callKey(id), "data")
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("calls: redis fetch: %w", err)
	}

	for _, cmd := range cmds {
		raw, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			// index entry without a hash; skip it
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("calls: redis fetch: %w", err)
		}
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, withReadDefaults(rec))
	}
	sortByStartDesc(out)
	return out, nil
}

// AddLead appends a contact row.
func (r *RedisRepo) AddLead(ctx context.Context, l Lead) error {
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("calls: encode lead: %w", err)
	}
	return r.rdb.RPush(ctx, r.leadsKey(), b).Err()
}

func (r *RedisRepo) ListLeads(ctx context.Context) ([]Lead, error) {
	raws, err := r.rdb.LRange(ctx, r.leadsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("calls: redis leads: %w", err)
	}
	out := make([]Lead, 0, len(raws))
	for _, raw := range raws {
		var l Lead
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			return nil, fmt.Errorf("calls: decode lead: %w", err)
		}
		out = append(out, l)
	}
	sortLeads(out)
	return out, nil
}

func encodeRecord(rec CallRecord) (string, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("calls: encode %s: %w", rec.ID, err)
	}
	return string(b), nil
}

func decodeRecord(raw string) (CallRecord, error) {
	var rec CallRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return CallRecord{}, fmt.Errorf("calls: decode: %w", err)
	}
	return rec, nil
}
