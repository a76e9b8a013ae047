package models

import "testing"

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name     string
		sale     float64
		original float64
		want     int
		show     bool
	}{
		{"half off", 50000, 100000, 50, true},
		{"rounds up", 66500, 100000, 34, true}, // 33.5 rounds to 34
		{"rounds down", 66600, 100000, 33, true},
		{"no markdown", 100000, 100000, 0, false},
		{"original below sale", 120000, 100000, 0, false},
		{"zero original", 50000, 0, 0, false},
		{"negative original", 50000, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, show := DiscountPercent(tt.sale, tt.original)
			if got != tt.want || show != tt.show {
				t.Errorf("DiscountPercent(%v, %v) = %d, %v; want %d, %v",
					tt.sale, tt.original, got, show, tt.want, tt.show)
			}
		})
	}
}

func TestProductDiscountPercentNilOriginal(t *testing.T) {
	p := Product{Price: 50000}
	if _, show := p.DiscountPercent(); show {
		t.Error("product without an original price should not show a badge")
	}
}

func TestVariantPricePrecedence(t *testing.T) {
	base := 100000.0

	inherited := InheritedPrice(base)
	if inherited.Overridden() {
		t.Fatal("inherited price reported as overridden")
	}
	if got := inherited.Resolve(base); got != base {
		t.Errorf("inherited Resolve = %v, want %v", got, base)
	}

	// Inherited rows follow a base-price change.
	moved := inherited.WithBase(125000)
	if got := moved.Resolve(125000); got != 125000 {
		t.Errorf("inherited row did not follow base change: got %v", got)
	}

	// Overridden rows keep their own value no matter the base.
	over := OverriddenPrice(90000)
	if !over.Overridden() {
		t.Fatal("overridden price not reported as overridden")
	}
	if got := over.WithBase(125000).Resolve(125000); got != 90000 {
		t.Errorf("override did not survive base change: got %v", got)
	}

	// Clearing an override returns the row to inheritance.
	cleared := over.Clear(125000)
	if cleared.Overridden() {
		t.Error("cleared row still overridden")
	}
	if got := cleared.Resolve(125000); got != 125000 {
		t.Errorf("cleared row Resolve = %v, want 125000", got)
	}
}
