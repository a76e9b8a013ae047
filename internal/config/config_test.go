package config

import "testing"

func TestSplitChatIDs(t *testing.T) {
	tests := []struct {
		in   string
		want []int64
	}{
		{"", nil},
		{"123", []int64{123}},
		{"123, 456", []int64{123, 456}},
		{"123,abc,456", []int64{123, 456}}, // malformed entries are skipped
		{" , ", nil},
	}
	for _, tt := range tests {
		got := splitChatIDs(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitChatIDs(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitChatIDs(%q)[%d] = %d, want %d", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestThemeFor(t *testing.T) {
	admin := ThemeFor("/admin/7/orders")
	if admin.Name != "backoffice" || !admin.DarkMode || !admin.ShowAdmin {
		t.Errorf("admin theme = %+v", admin)
	}

	store := ThemeFor("/product/kaos-hitam")
	if store.Name != "storefront" || store.DarkMode || store.ShowAdmin {
		t.Errorf("storefront theme = %+v", store)
	}

	// The same path always resolves to the same theme; nothing global
	// to toggle or restore.
	if again := ThemeFor("/admin/7/orders"); again != admin {
		t.Errorf("theme resolution is not pure: %+v vs %+v", again, admin)
	}
}
