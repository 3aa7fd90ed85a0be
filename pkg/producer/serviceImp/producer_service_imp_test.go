package serviceImp_test

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"vivero/database"
	"vivero/entities"
	"vivero/pkg/apperror"
	"vivero/pkg/producer/repositoryImp"
	"vivero/pkg/producer/service"
	"vivero/pkg/producer/serviceImp"
	"vivero/pkg/validation"
)

func newService(t *testing.T) (service.ProducerService, *gorm.DB) {
	t.Helper()
	db, err := database.OpenAndMigrate(database.MemoryPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return serviceImp.NewProducerService(repositoryImp.New(db), validation.New()), db
}

func juan() *entities.Producer {
	return &entities.Producer{
		IdentityDocument: "123456789",
		FirstName:        "Juan",
		LastName:         "Pérez",
		Phone:            "5551234",
		Email:            "juan@example.com",
	}
}

func TestCreateAndGetByDocument(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if err := svc.Create(ctx, juan()); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByDocument(ctx, "123456789")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FirstName != "Juan" || got.LastName != "Pérez" {
		t.Fatalf("unexpected producer: %+v", got)
	}
	if got.String() != "Juan Pérez" {
		t.Fatalf("String() = %q", got.String())
	}
}

func TestValidateRejectsDuplicateDocument(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if err := svc.Create(ctx, juan()); err != nil {
		t.Fatalf("create: %v", err)
	}

	ana := &entities.Producer{
		IdentityDocument: "123456789",
		FirstName:        "Ana",
		LastName:         "García",
		Phone:            "5556789",
		Email:            "ana@example.com",
	}
	err := svc.Validate(ctx, ana)
	var ve *apperror.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields["identity_document"]) == 0 {
		t.Fatalf("identity_document not reported: %v", ve.Fields)
	}

	if err := svc.ValidateAndCreate(ctx, ana); !apperror.IsValidation(err) {
		t.Fatalf("ValidateAndCreate: expected ValidationError, got %v", err)
	}
}

func TestValidateAcceptsSelfOnUpdate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	p := juan()
	if err := svc.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Validate(ctx, p); err != nil {
		t.Fatalf("stored producer should validate against itself: %v", err)
	}
}

func TestCreateDuplicateDocumentIsIntegrityError(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if err := svc.Create(ctx, juan()); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := svc.Create(ctx, juan())
	var ie *apperror.IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if ie.Constraint != apperror.ConstraintUnique {
		t.Fatalf("constraint = %q", ie.Constraint)
	}
}

func TestValidateFieldRules(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Validate(context.Background(), &entities.Producer{FirstName: "Sin", Email: "not-an-email"})
	var ve *apperror.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, f := range []string{"identity_document", "last_name", "email"} {
		if len(ve.Fields[f]) == 0 {
			t.Errorf("expected error on %s, got %v", f, ve.Fields)
		}
	}
	if _, ok := ve.Fields["phone"]; ok {
		t.Errorf("phone is optional: %v", ve.Fields)
	}
}

func TestUpdateContact(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if err := svc.Create(ctx, juan()); err != nil {
		t.Fatalf("create: %v", err)
	}
	phone := "3001112233"
	bad := "nope"
	if _, err := svc.UpdateContact(ctx, "123456789", service.ProducerPatch{Email: &bad}); !apperror.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	got, err := svc.UpdateContact(ctx, "123456789", service.ProducerPatch{Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ := svc.GetByDocument(ctx, "123456789")
	if got.Phone != phone || again.Phone != phone || again.Email != "juan@example.com" {
		t.Fatalf("unexpected after update: %+v", again)
	}
}

func TestDeleteCascadesToFarms(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	p := juan()
	if err := svc.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	farm := &entities.Farm{CadastralNumber: "FNC001", Municipality: "Bogotá", ProducerID: p.ProducerID}
	if err := db.Create(farm).Error; err != nil {
		t.Fatalf("create farm: %v", err)
	}

	farms, err := svc.Farms(ctx, "123456789")
	if err != nil || len(farms) != 1 || farms[0].CadastralNumber != "FNC001" {
		t.Fatalf("farms = %+v, err = %v", farms, err)
	}

	if err := svc.Delete(ctx, "123456789"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var n int64
	db.Model(&entities.Farm{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected farms to cascade, %d left", n)
	}
	if _, err := svc.GetByDocument(ctx, "123456789"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
