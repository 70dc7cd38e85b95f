package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/roi-admin-api/internal/domain/access"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		name     string
		caller   []string
		required []string
		want     bool
	}{
		{"admin es comodín", []string{access.RoleAdmin}, []string{access.RoleRespAdmContable}, true},
		{"rol exacto", []string{access.RoleRespAdmContable}, []string{access.RoleRespAdmContable}, true},
		{"uno de varios roles", []string{"otro", access.RoleRespTI}, []string{access.RoleRespAdmContable, access.RoleRespTI}, true},
		{"rol distinto", []string{access.RoleRespTI}, []string{access.RoleRespAdmContable}, false},
		{"sin roles", nil, []string{access.RoleRespAdmContable}, false},
		{"requeridos vacío niega incluso a admin", []string{access.RoleAdmin}, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, access.Allowed(tc.caller, tc.required))
		})
	}
}
