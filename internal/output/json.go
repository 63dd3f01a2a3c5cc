// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"logan-core/xdrop"

	"logan/internal/overlap"
	"logan/pkg/api"
)

// ToAPIAlignment converts an alignment to the stable wire schema (v1).
func ToAPIAlignment(al overlap.Alignment) api.AlignmentV1 {
	beginA, endA := al.ForwardA()
	return api.AlignmentV1{
		ReadA:      al.A,
		ReadB:      al.B,
		Score:      al.Best,
		Exit:       al.Exit,
		Overlap:    al.Overlap,
		Strand:     al.Strand.String(),
		BeginA:     beginA,
		EndA:       endA,
		LenA:       al.LenA,
		BeginB:     al.Seed.BeginV,
		EndB:       al.Seed.EndV,
		LenB:       al.LenB,
		ReachesEnd: al.ReachesEnd,
		Pass:       al.Pass,
	}
}

func toAPIAlignments(list []overlap.Alignment) []api.AlignmentV1 {
	out := make([]api.AlignmentV1, 0, len(list))
	for _, al := range list {
		out = append(out, ToAPIAlignment(al))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 alignments (pretty-indented).
func WriteJSON(w io.Writer, list []overlap.Alignment) error {
	return writeIndented(w, toAPIAlignments(list))
}

// ToAPIExtension converts one seed extension to its wire schema. Halves
// that were not run are left out.
func ToAPIExtension(x xdrop.Extension, dir xdrop.Direction, lanes xdrop.Lanes) api.ExtensionV1 {
	v := api.ExtensionV1{
		Score:  x.Best,
		Exit:   x.Exit,
		Anchor: x.Anchor,
		BeginH: x.Seed.BeginH,
		EndH:   x.Seed.EndH,
		BeginV: x.Seed.BeginV,
		EndV:   x.Seed.EndV,
		Lanes:  lanes.String(),
	}
	if dir == xdrop.Left || dir == xdrop.Both {
		v.Left = toAPIHalf(x.Left)
	}
	if dir == xdrop.Right || dir == xdrop.Both {
		v.Right = toAPIHalf(x.Right)
	}
	return v
}

func toAPIHalf(h xdrop.Half) *api.HalfV1 {
	return &api.HalfV1{
		Score:         h.Best,
		Exit:          h.Exit,
		H:             h.H,
		V:             h.V,
		BestH:         h.BestH,
		BestV:         h.BestV,
		Stop:          h.Reason.String(),
		AntiDiagonals: h.AntiDiagonals,
	}
}

// WriteExtension writes one extension as indented JSON.
func WriteExtension(w io.Writer, x xdrop.Extension, dir xdrop.Direction, lanes xdrop.Lanes) error {
	return writeIndented(w, ToAPIExtension(x, dir, lanes))
}

// writeIndented keeps '<', '>' and '&' literal so read names print as given.
func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
