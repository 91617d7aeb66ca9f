package strainview

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/strain-screen/internal/errors"
	redisclient "github.com/KirkDiggler/strain-screen/internal/redis"
)

// ScanResult reports cached views that no longer decode
type ScanResult struct {
	Checked int
	Corrupt []string
}

// ScanCorrupt walks every cached view and collects the keys Decode rejects.
// Keys that expire mid-scan are skipped.
func ScanCorrupt(ctx context.Context, client redisclient.Client) (*ScanResult, error) {
	if client == nil {
		return nil, errors.InvalidArgument("redis client is required")
	}

	result := &ScanResult{}
	iter := client.Scan(ctx, 0, KeyPattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		raw, err := client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		result.Checked++
		if _, err := Decode(raw); err != nil {
			result.Corrupt = append(result.Corrupt, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan strain views")
	}

	return result, nil
}

// Purge deletes the given keys and returns how many were removed
func Purge(ctx context.Context, client redisclient.Client, keys []string) (int64, error) {
	if client == nil {
		return 0, errors.InvalidArgument("redis client is required")
	}
	if len(keys) == 0 {
		return 0, nil
	}

	removed, err := client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge strain views")
	}
	return removed, nil
}
