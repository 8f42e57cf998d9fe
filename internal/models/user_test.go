package models

import (
	"testing"
)

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"admin role", RoleAdmin, true},
		{"curator role", RoleCurator, true},
		{"member role", RoleMember, true},
		{"viewer role", RoleViewer, true},
		{"invalid role", "invalid", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRole(tt.role)
			if result != tt.expected {
				t.Errorf("IsValidRole(%s) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestUser_HasPermission(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	curator := &User{Role: RoleCurator}
	member := &User{Role: RoleMember}
	viewer := &User{Role: RoleViewer}

	tests := []struct {
		name     string
		user     *User
		action   string
		expected bool
	}{
		// Admin permissions - should have all permissions
		{"admin can delete user", admin, "delete_user", true},
		{"admin can manage users", admin, "manage_users", true},
		{"admin can delete spot", admin, "delete_spot", true},
		{"admin can import data", admin, "import_data", true},

		// Curator permissions - can do most things except user management
		{"curator cannot delete user", curator, "delete_user", false},
		{"curator cannot manage users", curator, "manage_users", false},
		{"curator can delete spot", curator, "delete_spot", true},
		{"curator can import data", curator, "import_data", true},
		{"curator can create spot", curator, "create_spot", true},

		// Member permissions - can contribute but not curate
		{"member can view spots", member, "view_spots", true},
		{"member can create spot", member, "create_spot", true},
		{"member can update spot", member, "update_spot", true},
		{"member can rate spot", member, "rate_spot", true},
		{"member can upload photo", member, "upload_photo", true},
		{"member cannot delete spot", member, "delete_spot", false},
		{"member cannot import data", member, "import_data", false},
		{"member cannot manage users", member, "manage_users", false},

		// Viewer permissions - read-only access
		{"viewer can view spots", viewer, "view_spots", true},
		{"viewer can view ratings", viewer, "view_ratings", true},
		{"viewer can view photos", viewer, "view_photos", true},
		{"viewer cannot create spot", viewer, "create_spot", false},
		{"viewer cannot rate spot", viewer, "rate_spot", false},
		{"viewer cannot delete user", viewer, "delete_user", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.user.HasPermission(tt.action)
			if result != tt.expected {
				t.Errorf("User with role %s HasPermission(%s) = %v, want %v",
					tt.user.Role, tt.action, result, tt.expected)
			}
		})
	}
}
