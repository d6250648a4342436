package remote

// ActionType is the kind of change one sync step performs.
type ActionType string

const (
	ActionUpload       ActionType = "upload"
	ActionDownload     ActionType = "download"
	ActionDeleteRemote ActionType = "delete-remote"
	ActionDeleteLocal  ActionType = "delete-local"
)

// Action is one step of a sync plan.
type Action struct {
	Type ActionType `json:"type"`
	// Unit is the file name the action concerns.
	Unit string `json:"unit"`
	// Reason says why the planner selected the unit.
	Reason string `json:"reason"`
}

// Plan is what a push or pull run would change.
type Plan struct {
	Direction string   `json:"direction"`
	Bucket    string   `json:"bucket"`
	Prefix    string   `json:"prefix"`
	Actions   []Action `json:"actions"`
}

// IsEmpty reports whether the plan changes nothing.
func (p *Plan) IsEmpty() bool {
	return len(p.Actions) == 0
}

// Count returns how many actions of the given type the plan holds.
func (p *Plan) Count(t ActionType) int {
	n := 0
	for _, a := range p.Actions {
		if a.Type == t {
			n++
		}
	}
	return n
}
