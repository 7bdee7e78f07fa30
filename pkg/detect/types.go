package detect

import "time"

const (
	CheckNameNative     = "native"
	CheckNameSearchPath = "searchPath"
	CheckNameMounts     = "rwMounts"
)

type CheckResult struct {
	Name    string   `json:"name"`
	Found   bool     `json:"found"`
	Reasons []string `json:"reasons,omitempty"`
}

type Report struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"createdAt"`
	Rooted    bool          `json:"rooted"`
	Reasons   []string      `json:"reasons"`
	Checks    []CheckResult `json:"checks"`
}

func (r *Report) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	r.Reasons = append(r.Reasons, c.Reasons...)
	r.Rooted = r.Rooted || c.Found
}
