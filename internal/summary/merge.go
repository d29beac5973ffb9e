package summary

// Merge splices the pipeline's pivot output (overlay) into an earlier,
// differently-sourced wide dataset (base). Years present in both take the
// overlay's values, with base columns the overlay lacks set to zero; earlier
// years keep the base values unchanged. Column set, column order, and row
// coverage come from the base.
func Merge(base, overlay Table) Table {
	merged := Table{
		Blocs: append([]string(nil), base.Blocs...),
		Years: append([]int(nil), base.Years...),
		Cells: make(map[int]map[string]float64, len(base.Years)),
	}

	for _, year := range base.Years {
		row := make(map[string]float64, len(base.Blocs))
		if overlay.hasYear(year) {
			for _, bloc := range base.Blocs {
				row[bloc] = overlay.Value(year, bloc)
			}
		} else {
			for _, bloc := range base.Blocs {
				row[bloc] = base.Value(year, bloc)
			}
		}
		merged.Cells[year] = row
	}
	return merged
}
