package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"
)

// exportHeader is the fixed column order for CSV export.
var exportHeader = []string{
	"first_name", "last_name", "email", "phone", "city", "state", "metro",
	"zip_code", "source_language", "target_language", "specialties",
	"certifications", "years_experience", "hourly_rate", "proficiency_level",
	"rating", "is_available", "is_vetted", "approval_status",
}

type csvUsecase struct {
	interpreterRepo domain.InterpreterRepository
}

func NewCSVUsecase(interpreterRepo domain.InterpreterRepository) domain.CSVUsecase {
	return &csvUsecase{interpreterRepo: interpreterRepo}
}

// parseHeader maps recognized column names (case-insensitive) to their
// index. Unrecognized columns are ignored.
func parseHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

// headerHasRequired checks for name (either form) plus email and
// target_language columns.
func headerHasRequired(cols map[string]int) error {
	_, hasName := cols["name"]
	_, hasFirst := cols["first_name"]
	_, hasLast := cols["last_name"]
	if !hasName && !(hasFirst && hasLast) {
		return errors.New(`missing "name" (or "first_name"/"last_name") column`)
	}
	if _, ok := cols["email"]; !ok {
		return errors.New(`missing "email" column`)
	}
	if _, ok := cols["target_language"]; !ok {
		return errors.New(`missing "target_language" column`)
	}
	return nil
}

func readRecords(csvData string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(csvData))
	reader.FieldsPerRecord = -1 // column-count mismatches reported per row
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func field(cols map[string]int, record []string, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// rowToInterpreter builds a record from one CSV row, reporting the first
// missing required field.
func rowToInterpreter(cols map[string]int, record []string) (*domain.Interpreter, error) {
	interp := &domain.Interpreter{
		FirstName:      field(cols, record, "first_name"),
		LastName:       field(cols, record, "last_name"),
		Email:          field(cols, record, "email"),
		Phone:          field(cols, record, "phone"),
		City:           field(cols, record, "city"),
		State:          field(cols, record, "state"),
		Metro:          field(cols, record, "metro"),
		ZipCode:        field(cols, record, "zip_code"),
		SourceLanguage: field(cols, record, "source_language"),
		TargetLanguage: field(cols, record, "target_language"),
		Certifications: field(cols, record, "certifications"),
	}

	if name := field(cols, record, "name"); name != "" && interp.FirstName == "" {
		first, rest, _ := strings.Cut(name, " ")
		interp.FirstName = first
		interp.LastName = rest
	}
	if specialties := field(cols, record, "specialties"); specialties != "" {
		for _, s := range strings.Split(specialties, ";") {
			if s = strings.TrimSpace(s); s != "" {
				interp.Specialties = append(interp.Specialties, s)
			}
		}
	}
	if raw := field(cols, record, "years_experience"); raw != "" {
		if years, err := strconv.Atoi(raw); err == nil {
			interp.YearsExperience = years
		}
	}
	if raw := field(cols, record, "hourly_rate"); raw != "" {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil {
			interp.HourlyRate = rate
		}
	}
	if raw := field(cols, record, "proficiency_level"); raw != "" {
		interp.ProficiencyLevel = raw
	}

	switch {
	case interp.FirstName == "":
		return nil, errors.New("missing name")
	case interp.Email == "":
		return nil, errors.New("missing email")
	case interp.TargetLanguage == "":
		return nil, errors.New("missing target_language")
	}

	if interp.SourceLanguage == "" {
		interp.SourceLanguage = "English"
	}
	interp.IsAvailable = true
	interp.ApprovalStatus = domain.ApprovalPending

	return interp, nil
}

// Import creates one interpreter per row. Rows fail independently; a bad
// row or duplicate email is counted and skipped, never aborting the
// batch. Rows already inserted stay committed.
func (u *csvUsecase) Import(ctx context.Context, csvData string) (*domain.ImportResult, error) {
	records, err := readRecords(csvData)
	if err != nil {
		return nil, apperror.BadRequest("Could not parse CSV: " + err.Error())
	}
	if len(records) < 2 {
		return nil, apperror.BadRequest("CSV must contain a header row and at least one data row")
	}

	cols := parseHeader(records[0])
	if err := headerHasRequired(cols); err != nil {
		return nil, apperror.BadRequest("Invalid CSV header: " + err.Error())
	}

	result := &domain.ImportResult{Errors: []domain.RowError{}}
	for i, record := range records[1:] {
		rowNum := i + 2 // 1-based, counting the header

		if len(record) != len(records[0]) {
			result.Failed++
			result.Errors = append(result.Errors, domain.RowError{
				Row:    rowNum,
				Reason: fmt.Sprintf("expected %d columns, got %d", len(records[0]), len(record)),
			})
			continue
		}

		interp, err := rowToInterpreter(cols, record)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		interp.CreatedAt = time.Now()
		interp.UpdatedAt = interp.CreatedAt

		if err := u.interpreterRepo.Create(ctx, interp); err != nil {
			reason := "store rejected row"
			if errors.Is(err, domain.ErrConflict) {
				reason = "duplicate email: " + interp.Email
			}
			result.Failed++
			result.Errors = append(result.Errors, domain.RowError{Row: rowNum, Reason: reason})
			continue
		}
		result.Success++
	}

	return result, nil
}

// Validate is the pre-import dry run: header and per-row shape checks,
// no writes.
func (u *csvUsecase) Validate(ctx context.Context, csvData string) (*domain.ValidateResult, error) {
	records, err := readRecords(csvData)
	if err != nil {
		return &domain.ValidateResult{
			Valid:  false,
			Errors: []domain.RowError{{Row: 0, Reason: "could not parse CSV: " + err.Error()}},
		}, nil
	}
	if len(records) < 2 {
		return &domain.ValidateResult{
			Valid:  false,
			Errors: []domain.RowError{{Row: 0, Reason: "CSV must contain a header row and at least one data row"}},
		}, nil
	}

	result := &domain.ValidateResult{Rows: len(records) - 1, Errors: []domain.RowError{}}

	cols := parseHeader(records[0])
	if err := headerHasRequired(cols); err != nil {
		result.Errors = append(result.Errors, domain.RowError{Row: 1, Reason: err.Error()})
		return result, nil
	}

	for i, record := range records[1:] {
		rowNum := i + 2
		if len(record) != len(records[0]) {
			result.Errors = append(result.Errors, domain.RowError{
				Row:    rowNum,
				Reason: fmt.Sprintf("expected %d columns, got %d", len(records[0]), len(record)),
			})
			continue
		}
		if _, err := rowToInterpreter(cols, record); err != nil {
			result.Errors = append(result.Errors, domain.RowError{Row: rowNum, Reason: err.Error()})
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}

// Export renders every record matching the filter, unpaginated.
func (u *csvUsecase) Export(ctx context.Context, filter *domain.SearchFilter) (*domain.ExportResult, error) {
	// Pull the full predicate set in one page; exports bypass the
	// search pagination cap
	exportFilter := *filter
	exportFilter.Limit = 1 << 20
	exportFilter.Offset = 0

	interpreters, _, err := u.interpreterRepo.Search(ctx, &exportFilter)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, interp := range interpreters {
		record := []string{
			interp.FirstName, interp.LastName, interp.Email, interp.Phone,
			interp.City, interp.State, interp.Metro, interp.ZipCode,
			interp.SourceLanguage, interp.TargetLanguage,
			strings.Join(interp.Specialties, ";"),
			interp.Certifications,
			strconv.Itoa(interp.YearsExperience),
			strconv.FormatFloat(interp.HourlyRate, 'f', 2, 64),
			interp.ProficiencyLevel, interp.Rating,
			strconv.FormatBool(interp.IsAvailable),
			strconv.FormatBool(interp.IsVetted),
			interp.ApprovalStatus,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return &domain.ExportResult{CSV: sb.String(), Count: len(interpreters)}, nil
}
