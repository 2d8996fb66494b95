package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRBACService_Enforce(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"manager pays closings", RoleManager, "closing", "pay", true},
		{"office cannot pay closings", RoleOffice, "closing", "pay", false},
		{"foreman cannot pay closings", RoleForeman, "closing", "pay", false},
		{"office manages clients", RoleOffice, "client", "write", true},
		{"foreman registers timesheets", RoleForeman, "timesheet", "write", true},
		{"foreman registers batches", RoleForeman, "batch", "write", true},
		{"foreman cannot manage workers", RoleForeman, "worker", "write", false},
		{"manager inherits foreman permissions", RoleManager, "timesheet", "write", true},
		{"office inherits foreman permissions", RoleOffice, "fiscalization", "write", true},
		{"unknown role gets nothing", "VISITOR", "timesheet", "write", false},
		{"unknown resource gets nothing", RoleManager, "payroll", "write", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
