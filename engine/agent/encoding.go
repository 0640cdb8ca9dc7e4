package agent

import (
	"fmt"
	"strings"
)

// Describe renders slots one per line, for example:
//
//	Card 0: Red 3 (certain) - Clued
//	Card 1: Color=Blue (certain), Rank={1,2} - Clued
//	Card 2: Color={R,G}, Rank={any} - Unknown
func Describe(slots []Knowledge) string {
	var sb strings.Builder
	for i, k := range slots {
		fmt.Fprintf(&sb, "Card %d: %s\n", i, DescribeSlot(k))
	}
	return sb.String()
}

// DescribeSlot renders one slot without its index.
func DescribeSlot(k Knowledge) string {
	var sb strings.Builder
	if c, r, ok := k.Identity(); ok {
		fmt.Fprintf(&sb, "%s %s (certain)", c, r)
	} else {
		sb.WriteString(describeColors(k.Colors))
		sb.WriteString(", ")
		sb.WriteString(describeRanks(k.Ranks))
	}
	if k.Clued {
		sb.WriteString(" - Clued")
	} else {
		sb.WriteString(" - Unknown")
	}
	return sb.String()
}

func describeColors(s ColorSet) string {
	if c, ok := s.Only(); ok {
		return "Color=" + c.String() + " (certain)"
	}
	if s == AllColors {
		return "Color={any}"
	}
	names := make([]string, 0, s.Len())
	for _, c := range s.Values() {
		names = append(names, c.String()[:1])
	}
	return "Color={" + strings.Join(names, ",") + "}"
}

func describeRanks(s RankSet) string {
	if r, ok := s.Only(); ok {
		return "Rank=" + r.String() + " (certain)"
	}
	if s == AllRanks {
		return "Rank={any}"
	}
	names := make([]string, 0, s.Len())
	for _, r := range s.Values() {
		names = append(names, r.String())
	}
	return "Rank={" + strings.Join(names, ",") + "}"
}
