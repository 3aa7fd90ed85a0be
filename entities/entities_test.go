package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestStringContracts(t *testing.T) {
	d, _ := ParseDate("2024-09-15")
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"producer", Producer{FirstName: "Juan", LastName: "Pérez"}.String(), "Juan Pérez"},
		{"farm", Farm{CadastralNumber: "FNC002", Municipality: "Bogotá"}.String(), "Finca FNC002 - Bogotá"},
		{"nursery", Nursery{Code: "VIV003", CropType: "Arroz"}.String(), "Vivero VIV003 - Arroz"},
		{"labor", Labor{Description: "Aplicación de fungicida", Date: d}.String(), "Labor Aplicación de fungicida en 2024-09-15"},
		{"product", FungusControlProduct{ControlProduct: ControlProduct{ProductName: "Fungicida X", RegistryID: "ICA123", Value: decimal.NewFromInt(100)}}.String(), "Fungicida X (ICA123)"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Location() != time.UTC || FormatDate(got) != "2024-02-29" {
		t.Fatalf("got %v", got)
	}
	for _, bad := range []string{"", "2023-02-29", "15/09/2024", "2024-9-15"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestDateOnlyKeepsCalendarDay(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	in := time.Date(2024, 9, 15, 22, 30, 0, 0, bogota)
	got := DateOnly(in)
	if !got.Equal(time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("DateOnly = %v", got)
	}
}

func TestProductKinds(t *testing.T) {
	for _, k := range []ProductKind{KindFungus, KindPest, KindFertilizer} {
		if got, err := ParseProductKind(string(k)); err != nil || got != k {
			t.Errorf("ParseProductKind(%q) = %q, %v", k, got, err)
		}
		m, err := NewProductModel(k)
		if err != nil || m == nil {
			t.Errorf("NewProductModel(%q) = %v, %v", k, m, err)
		}
		assoc, err := ProductAssociation(k)
		if err != nil || assoc == "" {
			t.Errorf("ProductAssociation(%q) = %q, %v", k, assoc, err)
		}
	}
	if _, err := ParseProductKind("weed"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
