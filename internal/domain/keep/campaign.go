package keep

import "sort"

// CampaignProgress is the completed-stage set. Reward granting stays with
// the orchestrator; completing a stage twice is a no-op.
type CampaignProgress struct {
	completed map[string]struct{}
}

func NewCampaignProgress() *CampaignProgress {
	return &CampaignProgress{completed: make(map[string]struct{})}
}

// IsUnlocked reports whether a stage is attackable: the designated first
// stage always is, any other stage needs its unlocking predecessor
// completed.
func (c *CampaignProgress) IsUnlocked(cat *Catalog, stageID string) bool {
	if _, ok := cat.Stages[stageID]; !ok {
		return false
	}
	if stageID == cat.FirstStage {
		return true
	}
	for id := range c.completed {
		if stage, ok := cat.Stages[id]; ok && stage.UnlockNext == stageID {
			return true
		}
	}
	return false
}

func (c *CampaignProgress) CompleteStage(stageID string) {
	c.completed[stageID] = struct{}{}
}

func (c *CampaignProgress) IsCompleted(stageID string) bool {
	_, ok := c.completed[stageID]
	return ok
}

func (c *CampaignProgress) CompletedCount() int {
	return len(c.completed)
}

func (c *CampaignProgress) CompletedIDs() []string {
	out := make([]string, 0, len(c.completed))
	for id := range c.completed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (c *CampaignProgress) Restore(completed []string) {
	c.completed = make(map[string]struct{}, len(completed))
	for _, id := range completed {
		c.completed[id] = struct{}{}
	}
}
