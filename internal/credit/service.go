// Package credit is the durable claim store deciding who answered first.
//
// Expected schema:
//
//	CREATE TABLE credits (
//	    round_id    TEXT        NOT NULL,
//	    question_id TEXT        NOT NULL,
//	    client_id   TEXT        NOT NULL,
//	    create_time TIMESTAMPTZ NOT NULL,
//	    PRIMARY KEY (round_id, question_id)
//	);
//
// The primary key deliberately excludes client_id: the single-winner
// guarantee holds only if at most one row can exist per (round, question),
// no matter which client inserts it.
package credit

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/victornm/thinkfast/internal/domain"
	"github.com/victornm/thinkfast/internal/errors"
)

type Config struct {
	DB *pgxpool.Pool
}

type Service struct {
	db *pgxpool.Pool
}

func NewService(c Config) *Service {
	return &Service{db: c.DB}
}

// Claim inserts a credit record for (roundID, questionID) tagged with
// clientID. Exactly one concurrent caller succeeds; the rest get
// CodeAlreadyExists. Any other error is returned as-is and must be treated
// as "unknown, do not grant" by the caller.
func (s *Service) Claim(ctx context.Context, roundID, questionID, clientID string) error {
	const stmt = `INSERT INTO credits (round_id, question_id, client_id, create_time) VALUES ($1, $2, $3, $4);`

	_, err := s.db.Exec(ctx, stmt, roundID, questionID, clientID, time.Now())

	var pgErr *pgconn.PgError
	const codeUniqueViolation = "23505"
	if stderrors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return errors.New(errors.CodeAlreadyExists,
			errors.WithMessagef("credit already claimed: round=%s question=%s", roundID, questionID),
			errors.WithCause(err))
	}

	return err
}

// List returns all recorded credits, newest first. Reporting only, not part
// of the resolution hot path.
func (s *Service) List(ctx context.Context) ([]domain.Credit, error) {
	const stmt = `
SELECT round_id, question_id, client_id, create_time
FROM credits
ORDER BY create_time DESC;`

	rows, err := s.db.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.Credit, error) {
		var c domain.Credit
		if err := r.Scan(&c.RoundID, &c.QuestionID, &c.ClientID, &c.CreateTime); err != nil {
			return domain.Credit{}, err
		}
		return c, nil
	})
}
