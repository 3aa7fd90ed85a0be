package serviceImp_test

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"vivero/database"
	"vivero/entities"
	"vivero/pkg/apperror"
	"vivero/pkg/farm/repositoryImp"
	"vivero/pkg/farm/service"
	"vivero/pkg/farm/serviceImp"
	"vivero/pkg/validation"
)

type fixture struct {
	svc      service.FarmService
	db       *gorm.DB
	producer *entities.Producer
	farm     *entities.Farm
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := database.OpenAndMigrate(database.MemoryPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	p := &entities.Producer{
		IdentityDocument: "987654321",
		FirstName:        "Carlos",
		LastName:         "Martínez",
		Phone:            "5559876",
		Email:            "carlos@example.com",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create producer: %v", err)
	}
	svc := serviceImp.NewFarmService(repositoryImp.New(db), validation.New())
	f := &entities.Farm{ProducerID: p.ProducerID, CadastralNumber: "FNC002", Municipality: "Bogotá"}
	if err := svc.Create(context.Background(), f); err != nil {
		t.Fatalf("create farm: %v", err)
	}
	return fixture{svc: svc, db: db, producer: p, farm: f}
}

func TestGetByCadastral(t *testing.T) {
	fx := setup(t)
	got, err := fx.svc.GetByCadastral(context.Background(), "FNC002")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Municipality != "Bogotá" {
		t.Fatalf("municipality = %q", got.Municipality)
	}
}

func TestOwningProducerResolves(t *testing.T) {
	fx := setup(t)
	got, err := fx.svc.GetByCadastral(context.Background(), "FNC002")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Producer == nil || got.Producer.FirstName != "Carlos" {
		t.Fatalf("producer not resolved: %+v", got.Producer)
	}
}

func TestValidateRejectsDuplicateCadastral(t *testing.T) {
	fx := setup(t)
	dup := &entities.Farm{ProducerID: fx.producer.ProducerID, CadastralNumber: "FNC002", Municipality: "Medellín"}
	err := fx.svc.Validate(context.Background(), dup)
	var ve *apperror.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields["cadastral_number"]) == 0 {
		t.Fatalf("cadastral_number not reported: %v", ve.Fields)
	}
}

func TestValidateRejectsUnknownProducer(t *testing.T) {
	fx := setup(t)
	err := fx.svc.Validate(context.Background(), &entities.Farm{ProducerID: 999, CadastralNumber: "FNC100", Municipality: "Cali"})
	var ve *apperror.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields["producer_id"]) == 0 {
		t.Fatalf("expected producer_id validation error, got %v", err)
	}
}

func TestCreateWithUnknownProducerIsIntegrityError(t *testing.T) {
	fx := setup(t)
	err := fx.svc.Create(context.Background(), &entities.Farm{ProducerID: 999, CadastralNumber: "FNC100", Municipality: "Cali"})
	var ie *apperror.IntegrityError
	if !errors.As(err, &ie) || ie.Constraint != apperror.ConstraintForeignKey {
		t.Fatalf("expected foreign key IntegrityError, got %v", err)
	}
}

func TestFarmString(t *testing.T) {
	fx := setup(t)
	if got := fx.farm.String(); got != "Finca FNC002 - Bogotá" {
		t.Fatalf("String() = %q", got)
	}
}

func TestNurseriesAndDelete(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	n := &entities.Nursery{FarmID: fx.farm.FarmID, Code: "VIV001", CropType: "Café"}
	if err := fx.db.Create(n).Error; err != nil {
		t.Fatalf("create nursery: %v", err)
	}
	ns, err := fx.svc.Nurseries(ctx, "FNC002")
	if err != nil || len(ns) != 1 || ns[0].Code != "VIV001" {
		t.Fatalf("nurseries = %+v, err = %v", ns, err)
	}
	if err := fx.svc.Delete(ctx, "FNC002"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := fx.svc.Delete(ctx, "FNC002"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
	var left int64
	fx.db.Model(&entities.Nursery{}).Count(&left)
	if left != 0 {
		t.Fatalf("nurseries should cascade, %d left", left)
	}
}
