package sdk

// StringPtr is a convenience helper for optional string fields.
func StringPtr(s string) *string { return &s }
