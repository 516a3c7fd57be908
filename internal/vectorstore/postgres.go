package vectorstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/studyassist/rag-backend/internal/entity"
)

// PostgresStore keeps collections in a pgvector table, one row per chunk.
// Ordering uses the cosine distance operator, matching the normalized
// vectors the embedders produce.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateCollection(ctx context.Context, name string, chunks []entity.DocumentChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return fmt.Errorf("collection %q must not be empty", name)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows := make([][]any, len(chunks))
	for i, chunk := range chunks {
		rows[i] = []any{name, chunk.Source, chunk.Text, pgvector.NewVector(vectors[i])}
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"rag_chunks"},
		[]string{"collection", "source", "content", "embedding"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("copy chunks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit chunks: %w", err)
	}

	return nil
}

func (s *PostgresStore) Search(ctx context.Context, name string, vector []float32, k int) ([]entity.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("search limit must be positive, got %d", k)
	}

	rows, err := s.pool.Query(ctx, `
        SELECT
            source,
            content,
            (embedding <=> $1::vector) AS distance
        FROM rag_chunks
        WHERE collection = $2
        ORDER BY embedding <=> $1::vector, id
        LIMIT $3
    `, pgvector.NewVector(vector), name, k)
	if err != nil {
		return nil, fmt.Errorf("query similar chunks: %w", err)
	}
	defer rows.Close()

	results := make([]entity.ScoredChunk, 0, k)
	for rows.Next() {
		var item entity.ScoredChunk
		var distance float64
		if err := rows.Scan(&item.Source, &item.Text, &distance); err != nil {
			return nil, fmt.Errorf("scan similar chunk: %w", err)
		}
		item.Score = 1 - distance
		results = append(results, item)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return results, nil
}

func (s *PostgresStore) DeleteCollection(ctx context.Context, name string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM rag_chunks WHERE collection = $1`, name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
