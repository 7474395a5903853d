package engine

// ListRowLabels returns the text of every non-empty label cell, top to bottom.
func ListRowLabels(t *Table) []string {
	labels := make([]string, 0, len(t.rows))
	for i := range t.rows {
		cell := t.label(i)
		if cell.IsEmpty() {
			continue
		}
		labels = append(labels, cell.String())
	}
	return labels
}
