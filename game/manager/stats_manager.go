package manager

import (
	"sort"
	"sync"
	"time"

	"grid-snake/game/types"
)

const (
	GroupSize       = 100 // Records merged per compression step
	MaxRecentScores = 200 // Scores kept for the history graph
)

// GameRecord describes one finished session, or an aggregate of many once
// compressed (CompressionIndex > 0)
type GameRecord struct {
	SessionID        string
	StartTime        time.Time
	EndTime          time.Time
	Outcome          types.State
	Score            int
	CompressionIndex int
	GamesCount       int
	Wins             int
	AverageScore     float64
	MedianScore      float64
	MaxScore         int
	MinScore         int
	AverageDuration  float64
}

// StatsManager keeps the in-memory history of finished sessions.
// Safe for concurrent use so a renderer may read while the loop writes.
type StatsManager struct {
	records   []GameRecord
	recent    []int
	groupSize int
	mutex     sync.RWMutex
}

func NewStatsManager(groupSize int) *StatsManager {
	if groupSize < 2 {
		groupSize = GroupSize
	}
	return &StatsManager{
		records:   make([]GameRecord, 0),
		recent:    make([]int, 0),
		groupSize: groupSize,
	}
}

// AddGame records a finished session
func (sm *StatsManager) AddGame(sessionID string, outcome types.State, score int, start, end time.Time) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	duration := end.Sub(start).Seconds()
	wins := 0
	if outcome == types.Won {
		wins = 1
	}
	sm.records = append(sm.records, GameRecord{
		SessionID:       sessionID,
		StartTime:       start,
		EndTime:         end,
		Outcome:         outcome,
		Score:           score,
		GamesCount:      1,
		Wins:            wins,
		AverageScore:    float64(score),
		MedianScore:     float64(score),
		MaxScore:        score,
		MinScore:        score,
		AverageDuration: duration,
	})

	if len(sm.recent) >= MaxRecentScores {
		sm.recent = sm.recent[1:]
	}
	sm.recent = append(sm.recent, score)

	sm.compress()
}

// compress merges each full group of same-level records into one record of
// the next level, cascading upward
func (sm *StatsManager) compress() {
	for level := 0; ; level++ {
		var same, rest []GameRecord
		for _, r := range sm.records {
			if r.CompressionIndex == level {
				same = append(same, r)
			} else {
				rest = append(rest, r)
			}
		}
		if len(same) < sm.groupSize {
			return
		}

		sort.Slice(same, func(i, j int) bool {
			return same[i].StartTime.Before(same[j].StartTime)
		})

		merged := make([]GameRecord, 0, len(same)/sm.groupSize+1)
		for i := 0; i < len(same); i += sm.groupSize {
			end := i + sm.groupSize
			if end > len(same) {
				merged = append(merged, same[i:]...)
				break
			}
			merged = append(merged, aggregate(same[i:end], level+1))
		}
		sm.records = append(rest, merged...)
	}
}

func aggregate(group []GameRecord, level int) GameRecord {
	out := GameRecord{
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
	}

	var totalScore, totalDuration float64
	medians := make([]float64, 0, len(group))
	for _, g := range group {
		if g.MaxScore > out.MaxScore {
			out.MaxScore = g.MaxScore
		}
		if g.MinScore < out.MinScore {
			out.MinScore = g.MinScore
		}
		if g.StartTime.Before(out.StartTime) {
			out.StartTime = g.StartTime
		}
		if g.EndTime.After(out.EndTime) {
			out.EndTime = g.EndTime
		}
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalDuration += g.AverageDuration * float64(g.GamesCount)
		out.GamesCount += g.GamesCount
		out.Wins += g.Wins
		for i := 0; i < g.GamesCount; i++ {
			medians = append(medians, g.MedianScore)
		}
	}

	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AverageDuration = totalDuration / float64(out.GamesCount)
	out.MedianScore = median(medians)
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

// GetRecords returns a copy of the stored records
func (sm *StatsManager) GetRecords() []GameRecord {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	out := make([]GameRecord, len(sm.records))
	copy(out, sm.records)
	return out
}

// GetRecentScores returns the latest scores, oldest first
func (sm *StatsManager) GetRecentScores() []int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	out := make([]int, len(sm.recent))
	copy(out, sm.recent)
	return out
}

func (sm *StatsManager) GetGamesPlayed() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	total := 0
	for _, r := range sm.records {
		total += r.GamesCount
	}
	return total
}

func (sm *StatsManager) GetWins() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	total := 0
	for _, r := range sm.records {
		total += r.Wins
	}
	return total
}

func (sm *StatsManager) GetHighScore() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	high := 0
	for _, r := range sm.records {
		if r.MaxScore > high {
			high = r.MaxScore
		}
	}
	return high
}

// GetAverageScore weights each record by the games it covers
func (sm *StatsManager) GetAverageScore() float64 {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	var total float64
	games := 0
	for _, r := range sm.records {
		total += r.AverageScore * float64(r.GamesCount)
		games += r.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

func (sm *StatsManager) GetMedianScore() float64 {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	values := make([]float64, 0, len(sm.records))
	for _, r := range sm.records {
		for i := 0; i < r.GamesCount; i++ {
			values = append(values, r.MedianScore)
		}
	}
	return median(values)
}

// GetAverageDuration returns the mean session length in seconds
func (sm *StatsManager) GetAverageDuration() float64 {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	var total float64
	games := 0
	for _, r := range sm.records {
		total += r.AverageDuration * float64(r.GamesCount)
		games += r.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}
