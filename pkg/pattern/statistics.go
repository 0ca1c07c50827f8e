package pattern

import "sort"

// CollectStatistics counts beads per colour straight from the sparse pixel
// list. The legend index of a colour is the index of its first pixel, even
// when that pixel is later painted over.
func CollectStatistics(spec Spec) Statistics {
	stats := Statistics{
		Rows:    spec.Height,
		Columns: spec.Width,
		Colors:  []ColorStat{},
	}

	counts := make(map[string]int)
	firstIndex := make(map[string]int)
	var order []string

	for _, p := range spec.Pixels {
		if _, seen := counts[p.Color]; !seen {
			order = append(order, p.Color)
			firstIndex[p.Color] = p.Index
		}
		counts[p.Color]++
		stats.TotalBeads++
	}

	for _, color := range order {
		stats.Colors = append(stats.Colors, ColorStat{
			Color: color,
			Index: firstIndex[color],
			Count: counts[color],
		})
	}

	sort.SliceStable(stats.Colors, func(i, j int) bool {
		return stats.Colors[i].Count < stats.Colors[j].Count
	})

	return stats
}
