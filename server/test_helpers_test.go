package server_test

// stringPtr returns a pointer to a string value
func stringPtr(s string) *string {
	return &s
}
