package domain

import "testing"

// TestNormalize vérifie l'algorithme trim -> exact -> insensible à la casse -> échec
func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		domain Domain
		raw    string
		want   string
		wantOK bool
	}{
		{"exact match", RegionDomain, "East", "East", true},
		{"trimmed match", RegionDomain, "  West  ", "West", true},
		{"case-insensitive match", RegionDomain, " east ", "East", true},
		{"upper-case match", ShipModeDomain, "SAME DAY", "Same Day", true},
		{"unknown value", RegionDomain, "Nowhere", "", false},
		{"empty value", RegionDomain, "", "", false},
		{"whitespace only", RegionDomain, "   ", "", false},
		{"segment exact", SegmentDomain, "Home Office", "Home Office", true},
		{"segment mixed case", SegmentDomain, "home office", "Home Office", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.domain.Normalize(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestNormalizeNullable vérifie la conversion en NULL explicite
func TestNormalizeNullable(t *testing.T) {
	if v := NormalizeNullable("central", RegionDomain); v == nil || *v != "Central" {
		t.Fatalf("expected Central, got %v", v)
	}
	if v := NormalizeNullable("Nowhere", RegionDomain); v != nil {
		t.Fatalf("expected nil for unmapped value, got %q", *v)
	}
	if v := NormalizeNullable("", RegionDomain); v != nil {
		t.Fatalf("expected nil for empty value, got %q", *v)
	}
}

// TestDomainContains vérifie l'appartenance stricte
func TestDomainContains(t *testing.T) {
	if !RegionDomain.Contains("South") {
		t.Fatal("South should belong to the region domain")
	}
	if RegionDomain.Contains("south") {
		t.Fatal("Contains must be strict, no case folding")
	}
}
