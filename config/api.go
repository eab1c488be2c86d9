package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public catalog paths (read-only browsing, no token)
	return []string{"/api/specials", "/api/specials/:id"}
}
