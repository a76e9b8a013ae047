package config

import "strings"

// Theme is the visual configuration the frontend applies for a route.
// It is resolved per request from the path alone; there is no global
// theme toggle to flip and restore.
type Theme struct {
	Name      string `json:"name"`
	DarkMode  bool   `json:"darkMode"`
	ShowAdmin bool   `json:"showAdmin"`
}

// ThemeFor returns the theme for a request path. Admin routes get the
// dark back-office theme; everything else gets the storefront theme.
func ThemeFor(path string) Theme {
	if strings.HasPrefix(path, "/admin") {
		return Theme{Name: "backoffice", DarkMode: true, ShowAdmin: true}
	}
	return Theme{Name: "storefront", DarkMode: false, ShowAdmin: false}
}
