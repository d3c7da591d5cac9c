package inmemory

import "sync"

type StageStats struct {
	Victories uint64 `json:"victories"`
	Defeats   uint64 `json:"defeats"`
}

type Snapshot struct {
	BattleTotal      uint64                `json:"battle_total"`
	BattleVictories  uint64                `json:"battle_victories"`
	BattleDefeats    uint64                `json:"battle_defeats"`
	BattleTicksTotal uint64                `json:"battle_ticks_total"`
	ByStage          map[string]StageStats `json:"by_stage"`
	CommandAccepted  map[string]uint64     `json:"command_accepted"`
	CommandRejected  map[string]uint64     `json:"command_rejected"`
}

// Recorder counts battle outcomes and command dispositions in memory; the
// ops endpoint exposes its snapshot.
type Recorder struct {
	mu        sync.Mutex
	victories uint64
	defeats   uint64
	ticks     uint64
	byStage   map[string]StageStats
	accepted  map[string]uint64
	rejected  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byStage:  map[string]StageStats{},
		accepted: map[string]uint64{},
		rejected: map[string]uint64{},
	}
}

func (r *Recorder) RecordVictory(stageID string, ticks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.victories++
	r.ticks += uint64(ticks)
	stats := r.byStage[stageID]
	stats.Victories++
	r.byStage[stageID] = stats
}

func (r *Recorder) RecordDefeat(stageID string, ticks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defeats++
	r.ticks += uint64(ticks)
	stats := r.byStage[stageID]
	stats.Defeats++
	r.byStage[stageID] = stats
}

func (r *Recorder) RecordAccepted(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted[kind]++
}

func (r *Recorder) RecordRejected(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected[kind]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		BattleVictories:  r.victories,
		BattleDefeats:    r.defeats,
		BattleTotal:      r.victories + r.defeats,
		BattleTicksTotal: r.ticks,
		ByStage:          make(map[string]StageStats, len(r.byStage)),
		CommandAccepted:  make(map[string]uint64, len(r.accepted)),
		CommandRejected:  make(map[string]uint64, len(r.rejected)),
	}
	for k, v := range r.byStage {
		out.ByStage[k] = v
	}
	for k, v := range r.accepted {
		out.CommandAccepted[k] = v
	}
	for k, v := range r.rejected {
		out.CommandRejected[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
