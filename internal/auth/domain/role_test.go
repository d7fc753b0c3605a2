package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		role    domain.Role
		want    string
		wantErr bool
	}{
		{role: "ROLE_ADMIN", want: "ADMIN"},
		{role: "ROLE_USER", want: "USER"},
		{role: "ROLE_SUPER_USER", want: "SUPER_USER"},
		{role: "ADMIN", wantErr: true},
		{role: "ROLE_", wantErr: true},
		{role: "role_admin", wantErr: true},
		{role: "GROUP_ADMIN", wantErr: true},
		{role: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got, err := domain.ParseRole(tt.role)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrMalformedRole)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestUserIdentity(t *testing.T) {
	id, err := domain.User{Username: "admin", Role: domain.RoleAdmin}.Identity()
	require.NoError(t, err)
	require.Equal(t, domain.Identity{Username: "admin", Role: domain.RoleAdmin, Authorities: []string{"ADMIN"}}, id)

	_, err = domain.User{Username: "x", Role: "broken"}.Identity()
	require.ErrorIs(t, err, domain.ErrMalformedRole)
}
