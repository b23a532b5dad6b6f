package model

import (
	"fmt"
	"math"
	"strings"
)

// DebugString renders a header line plus one record per state and one
// per edge, for logging and tests; gohmm does not implement a
// reader/writer for this layout.
func (m *Model) DebugString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d\n", m.Name, len(m.States))
	for i, s := range m.States {
		kind := "silent"
		if !s.Silent() {
			kind = "emitting"
		}
		fmt.Fprintf(&sb, "%d %s %s\n", i, s.Name, kind)
	}
	for k := range m.States {
		for j := m.OutOffset[k]; j < m.OutOffset[k+1]; j++ {
			fmt.Fprintf(&sb, "%d %d %.6f %.6f\n", k, m.OutTarget[j], math.Exp(m.OutLogP[j]), m.OutPC[j])
		}
	}
	return sb.String()
}
