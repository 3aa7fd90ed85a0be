package apperror

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestFromDBClassifiesDriverMessages(t *testing.T) {
	cases := []struct {
		name       string
		in         error
		constraint Constraint
		target     string
	}{
		{"unique", errors.New("constraint failed: UNIQUE constraint failed: nurseries.code (2067)"), ConstraintUnique, "nurseries.code"},
		{"foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), ConstraintForeignKey, ""},
		{"not null", errors.New("NOT NULL constraint failed: farms.municipality"), ConstraintNotNull, "farms.municipality"},
		{"foreign key bare code", errors.New("FOREIGN KEY constraint failed (787)"), ConstraintForeignKey, ""},
		{"unique composite", errors.New("UNIQUE constraint failed: labor_fungus_products.labor_id, labor_fungus_products.product_id (1555)"), ConstraintUnique, "labor_fungus_products.labor_id, labor_fungus_products.product_id"},
		{"gorm duplicated", gorm.ErrDuplicatedKey, ConstraintUnique, ""},
		{"gorm fk", gorm.ErrForeignKeyViolated, ConstraintForeignKey, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := FromDB("create nursery", tc.in)
			var ie *IntegrityError
			if !errors.As(err, &ie) {
				t.Fatalf("expected IntegrityError, got %T: %v", err, err)
			}
			if ie.Constraint != tc.constraint || ie.Target != tc.target {
				t.Fatalf("got constraint=%q target=%q", ie.Constraint, ie.Target)
			}
			if !errors.Is(err, tc.in) {
				t.Fatalf("original error not wrapped")
			}
		})
	}
}

func TestFromDBNotFoundAndPassthrough(t *testing.T) {
	if err := FromDB("get", nil); err != nil {
		t.Fatalf("nil in, got %v", err)
	}
	err := FromDB("get producer", gorm.ErrRecordNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	other := errors.New("disk I/O error")
	err = FromDB("list", other)
	if IsIntegrity(err) || !errors.Is(err, other) {
		t.Fatalf("unexpected classification: %v", err)
	}
}

func TestValidationError(t *testing.T) {
	ve := NewValidation("producer")
	if ve.OrNil() != nil {
		t.Fatal("empty validation error should be nil")
	}
	ve.Add("identity_document", "already exists")
	ve.Add("email", "must be a valid email")
	err := fmt.Errorf("register: %w", ve.OrNil())
	if !IsValidation(err) {
		t.Fatal("expected IsValidation")
	}
	want := "validation failed for producer: email: must be a valid email, identity_document: already exists"
	if ve.Error() != want {
		t.Fatalf("got %q", ve.Error())
	}
}
