package keep

// TrainingJob converts resources already paid into units over time. Only the
// head job of a queue accrues time.
type TrainingJob struct {
	TroopID     string
	Total       int
	Trained     int
	TimePerUnit float64
	Timer       float64
}

func (j *TrainingJob) Remaining() int {
	return j.Total - j.Trained
}

func (j *TrainingJob) Complete() bool {
	return j.Trained >= j.Total
}

func (j *TrainingJob) Progress() float64 {
	if j.Total <= 0 {
		return 1.0
	}
	unitProgress := 1.0
	if j.TimePerUnit > 0 {
		unitProgress = 1.0 - j.Timer/j.TimePerUnit
	}
	return (float64(j.Trained) + unitProgress) / float64(j.Total)
}

type TrainingCompletion struct {
	TroopID string `json:"troop_id"`
	Count   int    `json:"count"`
}

type TrainingQueue struct {
	MaxJobs int
	jobs    []*TrainingJob
}

func NewTrainingQueue() *TrainingQueue {
	return &TrainingQueue{MaxJobs: MaxTrainingJobs}
}

// CanTrain reports whether a batch can be queued, with a reason when not.
func (q *TrainingQueue) CanTrain(defs map[string]*TroopDef, ledger *Ledger, troopID string, count int) (bool, string) {
	def, ok := defs[troopID]
	if !ok {
		return false, "unknown troop type"
	}
	if count <= 0 {
		return false, "count must be positive"
	}
	if len(q.jobs) >= q.MaxJobs {
		return false, "training queue full"
	}
	if !ledger.CanAfford(scaleCost(def.Cost, float64(count))) {
		return false, "not enough resources"
	}
	return true, ""
}

// Start pays the batch cost atomically and queues the job. Per-unit time is
// fixed at enqueue: base training time divided by the speed multiplier.
func (q *TrainingQueue) Start(defs map[string]*TroopDef, ledger *Ledger, troopID string, count int, speedMult float64) bool {
	ok, _ := q.CanTrain(defs, ledger, troopID, count)
	if !ok {
		return false
	}
	def := defs[troopID]
	if !ledger.Pay(scaleCost(def.Cost, float64(count))) {
		return false
	}
	if speedMult <= 0 {
		speedMult = 1.0
	}
	perUnit := def.TrainingTime / speedMult
	q.jobs = append(q.jobs, &TrainingJob{
		TroopID:     troopID,
		Total:       count,
		TimePerUnit: perUnit,
		Timer:       perUnit,
	})
	return true
}

// Cancel removes a job and refunds the cost of the untrained remainder.
func (q *TrainingQueue) Cancel(defs map[string]*TroopDef, ledger *Ledger, index int) bool {
	if index < 0 || index >= len(q.jobs) {
		return false
	}
	job := q.jobs[index]
	if remaining := job.Remaining(); remaining > 0 {
		if def, ok := defs[job.TroopID]; ok {
			for id, amount := range def.Cost {
				ledger.Add(id, amount*float64(remaining))
			}
		}
	}
	q.jobs = append(q.jobs[:index], q.jobs[index+1:]...)
	return true
}

// Update advances the head job. The inner loop absorbs a dt spanning many
// units so no unit is lost to a large step. Completed jobs are popped and
// reported.
func (q *TrainingQueue) Update(dt float64, army *Army) []TrainingCompletion {
	var completed []TrainingCompletion
	if len(q.jobs) == 0 {
		return completed
	}

	job := q.jobs[0]
	job.Timer -= dt
	for job.Timer <= 0 && !job.Complete() {
		job.Trained++
		army.Add(job.TroopID, 1)
		if job.Complete() {
			job.Timer = 0
		} else {
			job.Timer += job.TimePerUnit
		}
	}

	if job.Complete() {
		completed = append(completed, TrainingCompletion{TroopID: job.TroopID, Count: job.Total})
		q.jobs = q.jobs[1:]
	}
	return completed
}

func (q *TrainingQueue) Len() int {
	return len(q.jobs)
}

func (q *TrainingQueue) Jobs() []TrainingJob {
	out := make([]TrainingJob, 0, len(q.jobs))
	for _, j := range q.jobs {
		out = append(out, *j)
	}
	return out
}

func (q *TrainingQueue) Restore(defs map[string]*TroopDef, jobs []TrainingJob) {
	q.jobs = q.jobs[:0]
	for _, j := range jobs {
		if _, ok := defs[j.TroopID]; !ok {
			continue
		}
		job := j
		q.jobs = append(q.jobs, &job)
	}
}

func scaleCost(cost map[string]float64, factor float64) map[string]float64 {
	out := make(map[string]float64, len(cost))
	for id, amount := range cost {
		out[id] = amount * factor
	}
	return out
}
