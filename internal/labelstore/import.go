package labelstore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"nolabels/internal/items"
	"nolabels/internal/language"
)

// ImportTerms loads tab-separated "id<TAB>language<TAB>label" lines into
// wb_terms inside one transaction, replacing existing labels for the same
// (item, language). Blank lines and lines starting with '#' are skipped. It
// returns the number of labels written.
func (s *SQLStore) ImportTerms(ctx context.Context, r io.Reader) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.upsertQuery())
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var count, lineNo int
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, lang, text, err := parseTermLine(line)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNo, err)
		}
		number, err := items.ToInt64([]string{id})
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := stmt.ExecContext(ctx, number[0], lang, text); err != nil {
			return 0, fmt.Errorf("line %d: write label: %w", lineNo, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read terms: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return count, nil
}

func parseTermLine(line string) (string, string, string, error) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("expected id<TAB>language<TAB>label, got %q", line)
	}
	id, ok := items.Normalize(parts[0])
	if !ok {
		return "", "", "", fmt.Errorf("invalid item id %q", strings.TrimSpace(parts[0]))
	}
	lang, err := language.Validate(parts[1])
	if err != nil {
		return "", "", "", err
	}
	return id, lang, strings.TrimSpace(parts[2]), nil
}

func (s *SQLStore) upsertQuery() string {
	p := s.dialect.placeholder
	return "INSERT INTO wb_terms (term_entity_id, term_entity_type, term_type, term_language, term_text)" +
		" VALUES (" + p(1) + ", 'item', 'label', " + p(2) + ", " + p(3) + ")" +
		" ON CONFLICT (term_entity_id, term_entity_type, term_type, term_language)" +
		" DO UPDATE SET term_text = excluded.term_text"
}
