package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned (wrapped) when a lookup by key finds no row.
var ErrNotFound = errors.New("not found")

// ValidationError is raised by the explicit pre-save validation step.
// Fields maps a JSON field name to its messages; "_" holds non-field messages.
type ValidationError struct {
	Entity string
	Fields map[string][]string
}

func NewValidation(entity string) *ValidationError {
	return &ValidationError{Entity: entity, Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Empty() bool { return e == nil || len(e.Fields) == 0 }

// OrNil returns e as an error only when it holds at least one message.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Entity, strings.Join(parts, ", "))
}

type Constraint string

const (
	ConstraintUnique     Constraint = "unique"
	ConstraintForeignKey Constraint = "foreign_key"
	ConstraintNotNull    Constraint = "not_null"
	ConstraintCheck      Constraint = "check"
)

// IntegrityError is raised when the storage layer rejects a write.
type IntegrityError struct {
	Op         string
	Constraint Constraint
	Target     string // e.g. "nurseries.code"; empty for foreign keys
	Err        error
}

func (e *IntegrityError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s constraint violated", e.Op, e.Constraint)
	if e.Target != "" {
		base += " on " + e.Target
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *IntegrityError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

var constraintMarkers = []struct {
	marker string
	kind   Constraint
}{
	{"UNIQUE constraint failed", ConstraintUnique},
	{"FOREIGN KEY constraint failed", ConstraintForeignKey},
	{"NOT NULL constraint failed", ConstraintNotNull},
	{"CHECK constraint failed", ConstraintCheck},
}

// FromDB classifies a storage error. Constraint violations become
// *IntegrityError, gorm.ErrRecordNotFound becomes ErrNotFound, anything else
// is wrapped with op.
func FromDB(op string, err error) error {
	if err == nil {
		return nil
	}
	var ie *IntegrityError
	if errors.As(err, &ie) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &IntegrityError{Op: op, Constraint: ConstraintUnique, Err: err}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &IntegrityError{Op: op, Constraint: ConstraintForeignKey, Err: err}
	}
	msg := err.Error()
	for _, m := range constraintMarkers {
		i := strings.Index(msg, m.marker)
		if i < 0 {
			continue
		}
		return &IntegrityError{Op: op, Constraint: m.kind, Target: target(msg[i+len(m.marker):]), Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// target pulls "table.column" out of the driver message tail, e.g.
// ": nurseries.code (2067)". Foreign key failures (" (787)") name no target.
func target(rest string) string {
	if i := strings.Index(rest, "("); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
