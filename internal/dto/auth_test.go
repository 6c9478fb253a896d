package dto

import "testing"

func TestRequestOTPRequest_ValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		want     bool
		wantMsg  string
	}{
		{
			name:     "valid password",
			password: "secret1",
			confirm:  "secret1",
			want:     true,
			wantMsg:  "",
		},
		{
			name:     "minimum length",
			password: "abcdef",
			confirm:  "abcdef",
			want:     true,
			wantMsg:  "",
		},
		{
			name:     "too short",
			password: "abcde",
			confirm:  "abcde",
			want:     false,
			wantMsg:  "Password must be at least 6 characters",
		},
		{
			name:     "too long",
			password: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			confirm:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			want:     false,
			wantMsg:  "Password must not exceed 50 characters",
		},
		{
			name:     "maximum length",
			password: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			confirm:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			want:     true,
			wantMsg:  "",
		},
		{
			name:     "confirmation mismatch",
			password: "secret1",
			confirm:  "secret2",
			want:     false,
			wantMsg:  "Passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &RequestOTPRequest{Password: tt.password, ConfirmPassword: tt.confirm}
			got, msg := r.ValidatePassword()
			if got != tt.want {
				t.Errorf("ValidatePassword() = %v, want %v", got, tt.want)
			}
			if msg != tt.wantMsg {
				t.Errorf("ValidatePassword() msg = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestRequestOTPRequest_ValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"valid email", "user@example.com", true},
		{"valid subdomain", "user@mail.example.co", true},
		{"missing at", "userexample.com", false},
		{"missing tld", "user@example", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &RequestOTPRequest{Email: tt.email}
			got, _ := r.ValidateEmail()
			if got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}
