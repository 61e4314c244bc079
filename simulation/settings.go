package simulation

import "time"

// Settings are the tunables of the feed.
type Settings struct {
	HistorySize     int
	HistoryLookback time.Duration
	SeedDelay       time.Duration
	TickPeriod      time.Duration
	// SkipProbability is the chance that an injection tick stays silent.
	SkipProbability float64
	SendLatency     time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		HistorySize:     10,
		HistoryLookback: 24 * time.Hour,
		SeedDelay:       time.Second,
		TickPeriod:      5 * time.Second,
		SkipProbability: 0.7,
		SendLatency:     300 * time.Millisecond,
	}
}
