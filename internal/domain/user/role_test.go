package user

import (
	"testing"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role       Role
		permission Permission
		want       bool
	}{
		{RoleAdmin, PermissionAttendanceApprove, true},
		{RoleAdmin, PermissionAttendanceManual, true},
		{RoleAdmin, PermissionAttendanceViewAll, true},
		{RoleAdmin, PermissionAttendanceCreate, true},
		{RoleEmployee, PermissionAttendanceViewOwn, true},
		{RoleEmployee, PermissionAttendanceCreate, true},
		{RoleEmployee, PermissionAttendanceApprove, false},
		{RoleEmployee, PermissionAttendanceManual, false},
		{RoleEmployee, PermissionAttendanceViewAll, false},
		{Role("intern"), PermissionAttendanceCreate, false},
		{Role(""), PermissionAttendanceViewOwn, false},
	}
	for _, c := range cases {
		got := HasPermission(c.role, c.permission)
		if got != c.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", c.role, c.permission, got, c.want)
		}
	}
}
