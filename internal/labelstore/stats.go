package labelstore

import "context"

// Stats summarizes the labels held by a store.
type Stats struct {
	Labels    int64
	Items     int64
	Languages int64
}

// Stats counts label rows, distinct items, and distinct languages.
func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT term_entity_id), COUNT(DISTINCT term_language)
		 FROM wb_terms WHERE term_type = 'label' AND term_entity_type = 'item'`,
	).Scan(&stats.Labels, &stats.Items, &stats.Languages)
	if err != nil {
		return Stats{}, s.lookupError("stats", "count labels", err)
	}
	return stats, nil
}

// LanguageCount is the number of item labels held for one language.
type LanguageCount struct {
	Language string
	Labels   int64
}

// LanguageCounts reports label counts per language, largest first.
func (s *SQLStore) LanguageCounts(ctx context.Context) ([]LanguageCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT term_language, COUNT(*) FROM wb_terms
		 WHERE term_type = 'label' AND term_entity_type = 'item'
		 GROUP BY term_language ORDER BY COUNT(*) DESC, term_language`)
	if err != nil {
		return nil, s.lookupError("stats", "count languages", err)
	}
	defer rows.Close()

	var counts []LanguageCount
	for rows.Next() {
		var c LanguageCount
		if err := rows.Scan(&c.Language, &c.Labels); err != nil {
			return nil, s.lookupError("stats", "malformed row", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, s.lookupError("stats", "read rows", err)
	}
	return counts, nil
}
