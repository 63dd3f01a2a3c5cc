// pkg/api/alignment_v1.go
package api

// AlignmentV1 is the stable JSON/JSONL schema for one read-pair alignment.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type AlignmentV1 struct {
	ReadA   string `json:"read_a"`
	ReadB   string `json:"read_b"`
	Score   int    `json:"score"`
	Exit    int    `json:"exit_score"`
	Overlap int    `json:"overlap"`
	Strand  string `json:"strand"` // "n" | "c"
	// A coordinates are on the forward strand of read A.
	BeginA int `json:"begin_a"`
	EndA   int `json:"end_a"`
	LenA   int `json:"len_a"`
	BeginB int `json:"begin_b"`
	EndB   int `json:"end_b"`
	LenB   int `json:"len_b"`

	ReachesEnd bool `json:"reaches_end"`
	Pass       bool `json:"pass"`
}

// ExtensionV1 is the schema printed by a single seed extension.
type ExtensionV1 struct {
	Score  int     `json:"score"`
	Exit   int     `json:"exit_score"`
	Anchor int     `json:"anchor"`
	BeginH int     `json:"begin_h"`
	EndH   int     `json:"end_h"`
	BeginV int     `json:"begin_v"`
	EndV   int     `json:"end_v"`
	Lanes  string  `json:"lanes"`
	Left   *HalfV1 `json:"left,omitempty"`
	Right  *HalfV1 `json:"right,omitempty"`
}

// HalfV1 describes one direction of an extension.
type HalfV1 struct {
	Score         int    `json:"score"`
	Exit          int    `json:"exit_score"`
	H             int    `json:"h"`
	V             int    `json:"v"`
	BestH         int    `json:"best_h"`
	BestV         int    `json:"best_v"`
	Stop          string `json:"stop"` // "xdrop" | "exhausted"
	AntiDiagonals int    `json:"anti_diagonals"`
}
