package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/prodsearch/internal/db"
)

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// SetWithTTL stores a value with an expiration. A non-positive ttl stores without expiry.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var cmd rueidis.Completed
	if ttl > 0 {
		cmd = s.b().Set().Key(key).Value(string(value)).Ex(ttl).Build()
	} else {
		cmd = s.b().Set().Key(key).Value(string(value)).Build()
	}
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// scanCount is the SCAN page size hint.
const scanCount = 500

// DeleteByPrefix removes every key starting with prefix from all nodes and
// returns how many keys were deleted. prefix must not contain glob patterns.
func (s *Store) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	deleted := 0
	for _, node := range s.client.Nodes() {
		n, err := deleteByPrefix(ctx, node, prefix)
		deleted += n
		if err != nil {
			return deleted, err
		}
	}
	return deleted, nil
}

// deleteByPrefix scans one node. Keys are unlinked one command each so
// cluster nodes never see a cross-slot request.
func deleteByPrefix(ctx context.Context, c rueidis.Client, prefix string) (int, error) {
	var cursor uint64
	deleted := 0
	for {
		scan := c.B().Scan().Cursor(cursor).Match(prefix + "*").Count(scanCount).Build()
		entry, err := c.Do(ctx, scan).AsScanEntry()
		if err != nil {
			return deleted, &db.Error{Op: db.OpScan, Err: err}
		}

		if len(entry.Elements) > 0 {
			cmds := make(rueidis.Commands, 0, len(entry.Elements))
			for _, key := range entry.Elements {
				cmds = append(cmds, c.B().Unlink().Key(key).Build())
			}
			for _, res := range c.DoMulti(ctx, cmds...) {
				n, err := res.AsInt64()
				if err != nil {
					return deleted, &db.Error{Op: db.OpUnlink, Err: err}
				}
				deleted += int(n)
			}
		}

		if entry.Cursor == 0 {
			return deleted, nil
		}
		cursor = entry.Cursor
	}
}
