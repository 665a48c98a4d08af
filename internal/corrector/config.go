package corrector

import "fmt"

// Tier names the stage of the search that produced a candidate.
type Tier int

const (
	TierNone  Tier = iota // nothing found, the query is echoed back
	TierExact             // the query itself is a known word
	TierEdit1             // one edit away from the query
	TierEdit2             // two edits away from the query
)

var tierNames = map[Tier]string{
	TierNone:  "none",
	TierExact: "exact",
	TierEdit1: "edit1",
	TierEdit2: "edit2",
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	for k, v := range tierNames {
		if v == string(b) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", b)
}

type Candidate struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
	Tier  Tier    `json:"tier"`
}
