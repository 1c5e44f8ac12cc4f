package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dayhub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// selectColumns lists every interpreter column with NULL text coalesced,
// in scanInterpreter order.
const selectColumns = `
	id, first_name, last_name, email,
	COALESCE(phone, ''), COALESCE(city, ''), COALESCE(state, ''),
	COALESCE(metro, ''), COALESCE(country, ''), COALESCE(zip_code, ''),
	latitude, longitude,
	COALESCE(source_language, ''), COALESCE(target_language, ''),
	COALESCE(specialties, ''), COALESCE(certifications, ''),
	COALESCE(years_experience, 0), COALESCE(hourly_rate, 0),
	COALESCE(proficiency_level, ''),
	is_available, is_vetted, COALESCE(approval_status, 'pending'),
	COALESCE(rating, ''),
	COALESCE(photo_url, ''), COALESCE(resume_url, ''),
	COALESCE(voice_clip_url, ''), COALESCE(certification_url, ''),
	created_at, updated_at`

type interpreterRepo struct {
	db *pgxpool.Pool
}

func NewInterpreterRepository(db *pgxpool.Pool) domain.InterpreterRepository {
	return &interpreterRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterpreter(row rowScanner) (*domain.Interpreter, error) {
	var i domain.Interpreter
	var specialties string
	err := row.Scan(
		&i.ID, &i.FirstName, &i.LastName, &i.Email,
		&i.Phone, &i.City, &i.State,
		&i.Metro, &i.Country, &i.ZipCode,
		&i.Latitude, &i.Longitude,
		&i.SourceLanguage, &i.TargetLanguage,
		&specialties, &i.Certifications,
		&i.YearsExperience, &i.HourlyRate,
		&i.ProficiencyLevel,
		&i.IsAvailable, &i.IsVetted, &i.ApprovalStatus,
		&i.Rating,
		&i.PhotoURL, &i.ResumeURL,
		&i.VoiceClipURL, &i.CertificationURL,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	i.Specialties = specialtiesFromText(specialties)
	return &i, nil
}

// distanceExpr renders the great-circle distance in miles between the
// origin placeholders and a record's stored coordinates. The least()
// guard keeps acos in domain for antipodal rounding.
func distanceExpr(latPlaceholder, lngPlaceholder string) string {
	return fmt.Sprintf(
		"(3958.8 * acos(least(1.0, cos(radians(%[1]s)) * cos(radians(latitude)) * cos(radians(longitude) - radians(%[2]s)) + sin(radians(%[1]s)) * sin(radians(latitude)))))",
		latPlaceholder, lngPlaceholder,
	)
}

// buildSearchWhere translates a filter into a conjunctive WHERE clause.
// Returns "" and no args for an empty filter set.
func buildSearchWhere(f *domain.SearchFilter) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Query != "" {
		p := arg("%" + f.Query + "%")
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE %[1]s OR last_name ILIKE %[1]s OR email ILIKE %[1]s OR phone ILIKE %[1]s)", p))
	}
	if f.SourceLanguage != "" {
		conds = append(conds, "source_language = "+arg(f.SourceLanguage))
	}
	if f.TargetLanguage != "" {
		conds = append(conds, "target_language = "+arg(f.TargetLanguage))
	}
	if f.Metro != "" {
		conds = append(conds, "metro = "+arg(f.Metro))
	}
	if f.State != "" {
		conds = append(conds, "state = "+arg(f.State))
	}
	if f.ProficiencyLevel != "" {
		conds = append(conds, "proficiency_level = "+arg(f.ProficiencyLevel))
	}
	if f.AvailableOnly {
		conds = append(conds, "is_available = TRUE")
	}
	if f.CertificationType != "" {
		conds = append(conds, "certifications ILIKE "+arg("%"+f.CertificationType+"%"))
	}
	if f.MinExperience != nil {
		conds = append(conds, "years_experience >= "+arg(*f.MinExperience))
	}
	if f.MaxExperience != nil {
		conds = append(conds, "years_experience <= "+arg(*f.MaxExperience))
	}
	if f.MinRate != nil {
		conds = append(conds, "hourly_rate >= "+arg(*f.MinRate))
	}
	if f.MaxRate != nil {
		conds = append(conds, "hourly_rate <= "+arg(*f.MaxRate))
	}
	if f.ApprovedOnly {
		// Hardcoded server-side: the public surface can never see
		// pending or rejected records
		conds = append(conds, "approval_status = 'approved'")
	} else if f.ApprovalStatus != "" {
		conds = append(conds, "approval_status = "+arg(f.ApprovalStatus))
	}
	if f.OriginLat != nil && f.OriginLng != nil && f.Radius > 0 {
		latP := arg(*f.OriginLat)
		lngP := arg(*f.OriginLng)
		radP := arg(f.Radius)
		conds = append(conds, fmt.Sprintf(
			"(latitude IS NOT NULL AND longitude IS NOT NULL AND %s <= %s)",
			distanceExpr(latP, lngP), radP))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildSearchOrder renders the ORDER BY clause. Ties always break by id
// ascending so pagination is deterministic. startIdx is the number of
// placeholders already consumed by the WHERE clause.
func buildSearchOrder(f *domain.SearchFilter, startIdx int) (string, []any) {
	dir := "ASC"
	if f.SortOrder == "desc" {
		dir = "DESC"
	}

	switch f.SortBy {
	case "name":
		// Display-name order: first name is the leading key
		return fmt.Sprintf(" ORDER BY first_name %[1]s, last_name %[1]s, id ASC", dir), nil
	case "rating":
		return fmt.Sprintf(" ORDER BY NULLIF(rating, '')::numeric %s NULLS LAST, id ASC", dir), nil
	case "distance":
		if f.OriginLat == nil || f.OriginLng == nil {
			// Geocode failed or no ZIP given: distance is undefined
			return " ORDER BY id ASC", nil
		}
		latP := fmt.Sprintf("$%d", startIdx+1)
		lngP := fmt.Sprintf("$%d", startIdx+2)
		return fmt.Sprintf(" ORDER BY %s %s, id ASC", distanceExpr(latP, lngP), dir),
			[]any{*f.OriginLat, *f.OriginLng}
	default:
		return " ORDER BY id ASC", nil
	}
}

func (r *interpreterRepo) Search(ctx context.Context, filter *domain.SearchFilter) ([]domain.Interpreter, int64, error) {
	where, whereArgs := buildSearchWhere(filter)

	var total int64
	countQuery := "SELECT COUNT(*) FROM interpreters" + where
	if err := r.db.QueryRow(ctx, countQuery, whereArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order, orderArgs := buildSearchOrder(filter, len(whereArgs))
	args := append(whereArgs, orderArgs...)

	query := fmt.Sprintf(
		"SELECT %s FROM interpreters%s%s LIMIT $%d OFFSET $%d",
		selectColumns, where, order, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var interpreters []domain.Interpreter
	for rows.Next() {
		interp, err := scanInterpreter(rows)
		if err != nil {
			return nil, 0, err
		}
		interpreters = append(interpreters, *interp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return interpreters, total, nil
}

func (r *interpreterRepo) GetByID(ctx context.Context, id int64) (*domain.Interpreter, error) {
	query := fmt.Sprintf("SELECT %s FROM interpreters WHERE id = $1", selectColumns)
	interp, err := scanInterpreter(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return interp, nil
}

func (r *interpreterRepo) GetByEmail(ctx context.Context, email string) (*domain.Interpreter, error) {
	query := fmt.Sprintf("SELECT %s FROM interpreters WHERE LOWER(email) = LOWER($1)", selectColumns)
	interp, err := scanInterpreter(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return interp, nil
}

func (r *interpreterRepo) Create(ctx context.Context, interp *domain.Interpreter) error {
	query := `INSERT INTO interpreters (
			first_name, last_name, email, phone, city, state, metro, country, zip_code,
			latitude, longitude, source_language, target_language, specialties,
			certifications, years_experience, hourly_rate, proficiency_level,
			is_available, is_vetted, approval_status, rating, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		interp.FirstName, interp.LastName, interp.Email, interp.Phone,
		interp.City, interp.State, interp.Metro, interp.Country, interp.ZipCode,
		interp.Latitude, interp.Longitude, interp.SourceLanguage, interp.TargetLanguage,
		specialtiesToText(interp.Specialties),
		interp.Certifications, interp.YearsExperience, interp.HourlyRate, interp.ProficiencyLevel,
		interp.IsAvailable, interp.IsVetted, interp.ApprovalStatus, interp.Rating,
		interp.CreatedAt, interp.UpdatedAt,
	).Scan(&interp.ID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *interpreterRepo) Update(ctx context.Context, interp *domain.Interpreter) error {
	query := `UPDATE interpreters SET
		first_name = $2,
		last_name = $3,
		email = $4,
		phone = $5,
		city = $6,
		state = $7,
		metro = $8,
		country = $9,
		zip_code = $10,
		latitude = $11,
		longitude = $12,
		source_language = $13,
		target_language = $14,
		specialties = $15,
		certifications = $16,
		years_experience = $17,
		hourly_rate = $18,
		proficiency_level = $19,
		is_available = $20,
		is_vetted = $21,
		approval_status = $22,
		updated_at = $23
	WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		interp.ID,
		interp.FirstName, interp.LastName, interp.Email, interp.Phone,
		interp.City, interp.State, interp.Metro, interp.Country, interp.ZipCode,
		interp.Latitude, interp.Longitude, interp.SourceLanguage, interp.TargetLanguage,
		specialtiesToText(interp.Specialties),
		interp.Certifications, interp.YearsExperience, interp.HourlyRate, interp.ProficiencyLevel,
		interp.IsAvailable, interp.IsVetted, interp.ApprovalStatus,
		interp.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *interpreterRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM interpreters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *interpreterRepo) SetApprovalStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE interpreters SET approval_status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *interpreterRepo) UpdateRating(ctx context.Context, id int64, rating string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE interpreters SET rating = $2, updated_at = NOW() WHERE id = $1`,
		id, rating)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// fileURLColumns whitelists the columns SetFileURL may touch.
var fileURLColumns = map[string]bool{
	"photo_url":         true,
	"resume_url":        true,
	"voice_clip_url":    true,
	"certification_url": true,
}

func (r *interpreterRepo) SetFileURL(ctx context.Context, id int64, column, url string) error {
	if !fileURLColumns[column] {
		return fmt.Errorf("invalid file url column: %s", column)
	}
	query := fmt.Sprintf(`UPDATE interpreters SET %s = $2, updated_at = NOW() WHERE id = $1`, column)
	result, err := r.db.Exec(ctx, query, id, url)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *interpreterRepo) DistinctLanguages(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "target_language")
}

func (r *interpreterRepo) DistinctMetros(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "metro")
}

func (r *interpreterRepo) DistinctStates(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "state")
}

func (r *interpreterRepo) distinctColumn(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT %[1]s FROM interpreters WHERE %[1]s IS NOT NULL AND %[1]s <> '' ORDER BY %[1]s`,
		column)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *interpreterRepo) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interpreters`).Scan(&total)
	return total, err
}

func (r *interpreterRepo) TopMetros(ctx context.Context, limit int) ([]domain.MetroCount, error) {
	query := `SELECT metro, COUNT(*) AS n FROM interpreters
		WHERE metro IS NOT NULL AND metro <> ''
		GROUP BY metro ORDER BY n DESC, metro ASC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metros []domain.MetroCount
	for rows.Next() {
		var m domain.MetroCount
		if err := rows.Scan(&m.Metro, &m.Count); err != nil {
			return nil, err
		}
		metros = append(metros, m)
	}
	return metros, rows.Err()
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (duplicate email).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
