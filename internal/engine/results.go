package engine

// LanguageLabel is one fallback-language cell of a ResultRow.
type LanguageLabel struct {
	Language string `json:"language"`
	Label    string `json:"label"`
}

// ResultRow describes one item lacking a target-language label. Labels holds
// one entry per fallback language, in fallback order; Label is "" when the
// item has no label in that language.
type ResultRow struct {
	ID     string          `json:"id"`
	Labels []LanguageLabel `json:"labels"`
}

// Label returns the label for lang, or "" when lang is not a fallback
// language or the item has no label in it.
func (r ResultRow) Label(lang string) string {
	for _, cell := range r.Labels {
		if cell.Language == lang {
			return cell.Label
		}
	}
	return ""
}

func (r *ResultRow) set(lang, label string) {
	for i := range r.Labels {
		if r.Labels[i].Language == lang {
			r.Labels[i].Label = label
			return
		}
	}
}

// Results maps item ids to rows and remembers the order in which rows were
// first seen.
type Results struct {
	rows  map[string]*ResultRow
	order []string
}

func newResults(capacity int) *Results {
	return &Results{
		rows:  make(map[string]*ResultRow, capacity),
		order: make([]string, 0, capacity),
	}
}

// Len reports the number of rows.
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// IDs returns the row ids in insertion order.
func (r *Results) IDs() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the row for id.
func (r *Results) Get(id string) (ResultRow, bool) {
	if r == nil {
		return ResultRow{}, false
	}
	row, ok := r.rows[id]
	if !ok {
		return ResultRow{}, false
	}
	return row.clone(), true
}

// Rows returns copies of all rows in insertion order.
func (r *Results) Rows() []ResultRow {
	if r == nil {
		return nil
	}
	out := make([]ResultRow, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rows[id].clone())
	}
	return out
}

func (r *Results) add(id string, fallback []string) {
	if _, ok := r.rows[id]; ok {
		return
	}
	row := &ResultRow{ID: id, Labels: make([]LanguageLabel, len(fallback))}
	for i, lang := range fallback {
		row.Labels[i] = LanguageLabel{Language: lang}
	}
	r.rows[id] = row
	r.order = append(r.order, id)
}

func (r *ResultRow) clone() ResultRow {
	labels := make([]LanguageLabel, len(r.Labels))
	copy(labels, r.Labels)
	return ResultRow{ID: r.ID, Labels: labels}
}
