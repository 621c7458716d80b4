package models

import "testing"

func TestUser_ApplyDefaults(t *testing.T) {
	tests := []struct {
		name         string
		user         User
		wantNickname string
		wantEmail    string
	}{
		{
			name:         "blank nickname falls back to name",
			user:         User{Name: "Alice", Email: "a@b.com"},
			wantNickname: "Alice",
			wantEmail:    "a@b.com",
		},
		{
			name:         "whitespace nickname falls back to name",
			user:         User{Name: "Alice", Nickname: "   ", Email: "a@b.com"},
			wantNickname: "Alice",
			wantEmail:    "a@b.com",
		},
		{
			name:         "explicit nickname is kept",
			user:         User{Name: "Alice", Nickname: "ally", Email: " a@b.com "},
			wantNickname: "ally",
			wantEmail:    "a@b.com",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			u.ApplyDefaults()
			if u.Nickname != tt.wantNickname {
				t.Errorf("Nickname = %q, want %q", u.Nickname, tt.wantNickname)
			}
			if u.Email != tt.wantEmail {
				t.Errorf("Email = %q, want %q", u.Email, tt.wantEmail)
			}
		})
	}
}

func TestUser_SubjectID(t *testing.T) {
	u := &User{ID: 42}
	if got := u.SubjectID(); got != "42" {
		t.Errorf("SubjectID() = %q, want %q", got, "42")
	}
}
