package user

import "testing"

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"018f4e2a-9b1c-7def-8123-456789abcdef", true},
		{"not-a-uuid", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidUUID(tt.in); got != tt.want {
			t.Errorf("IsValidUUID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
