package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/RaheesAhmed/growthcompass/internal/assessment"
	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/RaheesAhmed/growthcompass/internal/models"
	"github.com/RaheesAhmed/growthcompass/internal/sqlite"
	"github.com/jmoiron/sqlx"
)

var ErrAssessmentNotFound = errors.NewSentinel("assessment not found")

type AssessmentRepository struct {
	db       *sqlite.Database
	readOnly *sqlx.DB
	logger   *slog.Logger
}

func NewAssessmentRepository(db *sqlite.Database, logger *slog.Logger) *AssessmentRepository {
	return &AssessmentRepository{
		db:       db,
		readOnly: sqlx.NewDb(db.ReadOnly, "sqlite3"),
		logger:   logger.With("source", "AssessmentRepository"),
	}
}

type assessmentRow struct {
	ID         string    `db:"id"`
	RoleName   string    `db:"role_name"`
	LevelIndex int       `db:"level_index"`
	Responses  string    `db:"responses"`
	Plan       string    `db:"plan"`
	CreatedAt  time.Time `db:"created_at"`
}

// Save persists a completed assessment. Saving the same ID again replaces the
// previous row, which covers a respondent redoing the final step.
func (r *AssessmentRepository) Save(
	ctx context.Context,
	id string,
	roleName string,
	levelIndex int,
	records []assessment.Record,
) error {
	responses, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "marshal responses")
	}
	stmt := `INSERT INTO assessments (id, role_name, level_index, responses)
VALUES (@id, @role_name, @level_index, @responses)
ON CONFLICT (id) DO UPDATE SET role_name   = @role_name,
                               level_index = @level_index,
                               responses   = @responses`
	params := []any{
		sql.Named("id", id),
		sql.Named("role_name", roleName),
		sql.Named("level_index", levelIndex),
		sql.Named("responses", string(responses)),
	}
	if _, err = r.db.ReadWrite.ExecContext(ctx, stmt, params...); err != nil {
		return errors.Wrap(err, "insert assessment", slog.String("id", id))
	}
	return nil
}

// SavePlan attaches the generated growth plan to an assessment.
func (r *AssessmentRepository) SavePlan(ctx context.Context, id string, plan string) error {
	stmt := `UPDATE assessments SET plan = ? WHERE id = ?`
	result, err := r.db.ReadWrite.ExecContext(ctx, stmt, plan, id)
	if err != nil {
		return errors.Wrap(err, "update plan", slog.String("id", id))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return errors.Wrap(ErrAssessmentNotFound, "no assessment to attach plan to", slog.String("id", id))
	}
	return nil
}

func (r *AssessmentRepository) Get(ctx context.Context, id string) (*models.Assessment, error) {
	var row assessmentRow
	stmt := `SELECT id, role_name, level_index, responses, plan, created_at
FROM assessments
WHERE id = ?`
	if err := r.readOnly.GetContext(ctx, &row, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrAssessmentNotFound, "get assessment", slog.String("id", id))
		}
		return nil, errors.Wrap(err, "get assessment", slog.String("id", id))
	}

	var records []assessment.Record
	if err := json.Unmarshal([]byte(row.Responses), &records); err != nil {
		return nil, errors.Wrap(err, "unmarshal responses", slog.String("id", id))
	}
	return &models.Assessment{
		ID:         row.ID,
		RoleName:   row.RoleName,
		LevelIndex: row.LevelIndex,
		Records:    records,
		Plan:       row.Plan,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// List returns the most recent assessments, newest first.
func (r *AssessmentRepository) List(ctx context.Context, limit int) ([]models.AssessmentSummary, error) {
	var summaries []models.AssessmentSummary
	stmt := `SELECT id, role_name, level_index, plan != '' AS has_plan, created_at
FROM assessments
ORDER BY created_at DESC, id
LIMIT ?`
	if err := r.readOnly.SelectContext(ctx, &summaries, stmt, limit); err != nil {
		return nil, errors.Wrap(err, "list assessments")
	}
	return summaries, nil
}
