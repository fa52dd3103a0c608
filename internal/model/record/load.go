package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// wire types mirror the on-disk schema with pointer fields so that a missing
// key can be told apart from a zero value.
type wireDirector struct {
	DIN             *string `json:"din" validate:"required"`
	Name            *string `json:"director_name" validate:"required"`
	Designation     *string `json:"designation" validate:"required"`
	AppointmentDate *string `json:"appointment_date" validate:"required"`
}

type wireRecord struct {
	ID                 *int           `json:"data_id" validate:"required"`
	NumberOfMembers    *int           `json:"data_number_of_members" validate:"required"`
	CompanyName        *string        `json:"data_company_name" validate:"required"`
	RegisteredAddress  *string        `json:"data_registered_address" validate:"required"`
	CIN                *string        `json:"data_cin" validate:"required"`
	ActiveCompliance   *string        `json:"data_active_compliance" validate:"required"`
	ROCCode            *string        `json:"data_roc_code" validate:"required"`
	RegistrationNumber *int           `json:"data_registration_number" validate:"required"`
	Directors          []wireDirector `json:"data_directors" validate:"required,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads the record collection from a JSON file.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return records, nil
}

// Decode parses a JSON array of records. Unknown fields, missing fields,
// nulls and trailing data are rejected.
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var wire []wireRecord
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if wire == nil {
		return nil, errors.New("decode records: expected a JSON array, got null")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode records: unexpected data after the records array")
	}

	records := make([]Record, 0, len(wire))
	for i := range wire {
		if err := validate.Struct(&wire[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, describeValidation(err))
		}
		records = append(records, wire[i].toRecord())
	}
	return records, nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		missing = append(missing, ns)
	}
	return fmt.Errorf("missing or null fields: %s", strings.Join(missing, ", "))
}

func (w wireRecord) toRecord() Record {
	directors := make([]Director, 0, len(w.Directors))
	for _, d := range w.Directors {
		directors = append(directors, Director{
			DIN:             *d.DIN,
			Name:            *d.Name,
			Designation:     *d.Designation,
			AppointmentDate: *d.AppointmentDate,
		})
	}

	return Record{
		ID:                 *w.ID,
		NumberOfMembers:    *w.NumberOfMembers,
		CompanyName:        *w.CompanyName,
		RegisteredAddress:  *w.RegisteredAddress,
		CIN:                *w.CIN,
		ActiveCompliance:   *w.ActiveCompliance,
		ROCCode:            *w.ROCCode,
		RegistrationNumber: *w.RegistrationNumber,
		Directors:          directors,
	}
}

// DuplicateIDs reports every data_id that appears more than once, in the
// order of first occurrence.
func DuplicateIDs(records []Record) []int {
	seen := make(map[int]int, len(records))
	var dups []int
	for _, rec := range records {
		seen[rec.ID]++
		if seen[rec.ID] == 2 {
			dups = append(dups, rec.ID)
		}
	}
	return dups
}
