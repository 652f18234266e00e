package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAssignable(t *testing.T) {
	assert.True(t, RoleStudent.Assignable())
	assert.True(t, RoleInstructor.Assignable())
	assert.True(t, RoleCSR.Assignable())

	assert.False(t, RoleAdmin.Assignable())
	assert.False(t, RoleSuperAdmin.Assignable())
	assert.False(t, Role("BOSS").Assignable())
}

func TestParseRoleFilter(t *testing.T) {
	tests := []struct {
		in   string
		want RoleFilter
		ok   bool
	}{
		{"all", RoleFilterAll, true},
		{"not_student", RoleFilterNotStudent, true},
		{"instructor", RoleFilter(RoleInstructor), true},
		{"Student", RoleFilter(RoleStudent), true},
		{"", "", false},
		{"everyone", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRoleFilter(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
