package access

import (
	"gamestore/domain"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestIsAllowed(t *testing.T) {
	editor := domain.Principal{ID: 7, Authenticated: true, Kind: domain.KindStaff, RoleName: "editor"}

	tests := []struct {
		name      string
		principal domain.Principal
		allowed   []string
		want      bool
	}{
		{name: "Role Not In Set", principal: editor, allowed: []string{"admin"}, want: false},
		{name: "Role In Set", principal: editor, allowed: []string{"admin", "editor"}, want: true},
		{name: "Empty Set", principal: editor, allowed: nil, want: false},
		{
			name:      "Unauthenticated",
			principal: domain.Principal{Kind: domain.KindStaff, RoleName: "admin"},
			allowed:   []string{"admin", "editor"},
			want:      false,
		},
		{
			name:      "Gamer Principal",
			principal: domain.Principal{ID: 3, Authenticated: true, Kind: domain.KindGamer},
			allowed:   []string{"admin"},
			want:      false,
		},
		{
			name:      "Staff Without Role",
			principal: domain.Principal{ID: 4, Authenticated: true, Kind: domain.KindStaff},
			allowed:   []string{"", "admin"},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowed(tt.principal, tt.allowed...))
		})
	}
}

func TestIsGamer(t *testing.T) {
	assert.True(t, IsGamer(domain.Principal{ID: 1, Authenticated: true, Kind: domain.KindGamer}))
	assert.False(t, IsGamer(domain.Principal{ID: 1, Kind: domain.KindGamer}))
	assert.False(t, IsGamer(domain.Principal{ID: 1, Authenticated: true, Kind: domain.KindStaff, RoleName: "admin"}))
	assert.False(t, IsGamer(domain.Principal{}))
}
