// Package dedupe provides shared singleflight groups used to collapse
// concurrent identical read requests into one storage query.
package dedupe

import (
	"fmt"

	"golang.org/x/sync/singleflight"
)

// LeaderboardGroup deduplicates leaderboard queries keyed by LeaderboardKey.
var LeaderboardGroup singleflight.Group

func LeaderboardKey(limit int) string { return fmt.Sprintf("leaderboard:%d", limit) }
