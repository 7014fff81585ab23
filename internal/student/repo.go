package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"uepex/internal/store"
)

const recordColumns = `tipo_documento, numero_documento, nombre_estudiante, apellidos_estudiante,
	codigo_curso, condicion_estudiante, curso, regional, tipo_cuenta, moneda, banco,
	cuenta_bancaria_estudiante, nombre_cuenta_bancaria, asistencia, inasistencia,
	asistencia_fecha_hora_entrada, asistencia_fecha_hora_salida`

const schema = `
	CREATE TABLE IF NOT EXISTS estudiantes (
		numero_documento              VARCHAR(20)  PRIMARY KEY,
		tipo_documento                VARCHAR(20)  NOT NULL,
		nombre_estudiante             VARCHAR(30)  NOT NULL,
		apellidos_estudiante          VARCHAR(30)  NOT NULL,
		codigo_curso                  VARCHAR(10)  NOT NULL,
		condicion_estudiante          VARCHAR(20)  NOT NULL,
		curso                         VARCHAR(100) NOT NULL,
		regional                      VARCHAR(50)  NOT NULL,
		tipo_cuenta                   VARCHAR(20)  NOT NULL,
		moneda                        VARCHAR(3)   NOT NULL,
		banco                         VARCHAR(50)  NOT NULL,
		cuenta_bancaria_estudiante    VARCHAR(20)  NOT NULL,
		nombre_cuenta_bancaria        VARCHAR(100) NOT NULL,
		asistencia                    INTEGER      NOT NULL DEFAULT 0,
		inasistencia                  INTEGER      NOT NULL DEFAULT 0,
		asistencia_fecha_hora_entrada VARCHAR(30)  NOT NULL,
		asistencia_fecha_hora_salida  VARCHAR(30)  NOT NULL
	)
`

// Repository persists student records in Postgres or SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the estudiantes table when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create estudiantes table: %w", err)
	}
	return nil
}

// FindByKey loads a record by document number.
func (r *Repository) FindByKey(ctx context.Context, documentNumber string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM estudiantes WHERE numero_documento = $1`, documentNumber)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find student %s: %w", documentNumber, err)
	}
	return &rec, nil
}

// Insert stores a new record. A duplicate document number yields ErrConflict.
func (r *Repository) Insert(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO estudiantes (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`,
		string(rec.DocumentType), rec.DocumentNumber, rec.FirstName, rec.LastName,
		rec.CourseCode, string(rec.Condition), rec.CourseName, rec.Region,
		string(rec.AccountType), string(rec.Currency), rec.BankName,
		rec.BankAccountNumber, rec.BankAccountHolderName, rec.AttendanceCount, rec.AbsenceCount,
		rec.CheckIn, rec.CheckOut,
	)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return fmt.Errorf("insert student %s: %w", rec.DocumentNumber, ErrConflict)
		}
		return fmt.Errorf("insert student %s: %w", rec.DocumentNumber, err)
	}
	return nil
}

// ListAll returns every record ordered by name, ties broken by document number.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM estudiantes
		ORDER BY nombre_estudiante, apellidos_estudiante, numero_documento
	`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	var docType, condition, accountType, currency string
	err := s.Scan(
		&docType, &rec.DocumentNumber, &rec.FirstName, &rec.LastName,
		&rec.CourseCode, &condition, &rec.CourseName, &rec.Region,
		&accountType, &currency, &rec.BankName,
		&rec.BankAccountNumber, &rec.BankAccountHolderName, &rec.AttendanceCount, &rec.AbsenceCount,
		&rec.CheckIn, &rec.CheckOut,
	)
	if err != nil {
		return Record{}, err
	}
	rec.DocumentType = DocumentType(docType)
	rec.Condition = Condition(condition)
	rec.AccountType = AccountType(accountType)
	rec.Currency = Currency(currency)
	return rec, nil
}
