package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const leaderboardKeyPrefix = "football_iq:leaderboard:"

type LeaderboardEntry struct {
	Rank         int64 `json:"rank"`
	AthleteID    uint  `json:"athleteId"`
	AverageScore int   `json:"averageScore"`
}

// LeaderboardRepository 按位置维护平均分排行榜（Redis ZSet）
type LeaderboardRepository struct {
	client *redis.Client
}

func NewLeaderboardRepository(client *redis.Client) *LeaderboardRepository {
	return &LeaderboardRepository{client: client}
}

func leaderboardKey(position string) string {
	return leaderboardKeyPrefix + position
}

func (r *LeaderboardRepository) UpdateAverage(ctx context.Context, position string, athleteID uint, averageScore int) error {
	return r.client.ZAdd(ctx, leaderboardKey(position), &redis.Z{
		Score:  float64(averageScore),
		Member: strconv.FormatUint(uint64(athleteID), 10),
	}).Err()
}

// TopByPosition 按平均分降序返回前 limit 名，Rank 从 1 开始
func (r *LeaderboardRepository) TopByPosition(ctx context.Context, position string, limit int64) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return []LeaderboardEntry{}, nil
	}
	results, err := r.client.ZRevRangeWithScores(ctx, leaderboardKey(position), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected leaderboard member type %T", z.Member)
		}
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse leaderboard member %q: %w", member, err)
		}
		entries = append(entries, LeaderboardEntry{
			Rank:         int64(i) + 1,
			AthleteID:    uint(id),
			AverageScore: int(z.Score),
		})
	}
	return entries, nil
}
