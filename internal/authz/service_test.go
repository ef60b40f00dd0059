package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestBuiltinRolePolicies(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := BootstrapBuiltinRoles(svc); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	cases := []struct {
		role   string
		object string
		action string
		want   bool
	}{
		{"ADMIN", "/api/v1/admin/users/3", "DELETE", true},
		{"ADMIN", "/api/v1/posts", "POST", true},
		{"USER", "/api/v1/posts", "POST", true},
		{"USER", "/api/v1/posts/42", "PATCH", true},
		{"USER", "/api/v1/posts/42/featured-image", "PATCH", true},
		{"USER", "/api/v1/comments/7", "DELETE", true},
		{"USER", "/api/v1/me", "GET", true},
		{"USER", "/api/v1/admin/users", "GET", false},
		{"USER", "/api/v1/admin/comments/7/approval", "PATCH", false},
		{"USER", "/api/v1/files/upload-url", "POST", true},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceRole(tc.role, tc.object, tc.action)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", tc.role, tc.action, tc.object, err)
		}
		if allow != tc.want {
			t.Fatalf("enforce %s %s %s want %v got %v", tc.role, tc.action, tc.object, tc.want, allow)
		}
	}
}

func TestGrantAndRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	if err := svc.GrantRolePolicy("EDITOR", "/admin/comments", "get"); err != nil {
		t.Fatalf("grant policy failed: %v", err)
	}
	allow, err := svc.EnforceRole("EDITOR", "/api/v1/admin/comments", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !allow {
		t.Fatalf("granted policy should allow")
	}

	policies, err := svc.GetRolePolicies("EDITOR")
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Action != "GET" {
		t.Fatalf("unexpected policies: %+v", policies)
	}

	if err := svc.RevokeRolePolicy("EDITOR", "/admin/comments", "GET"); err != nil {
		t.Fatalf("revoke policy failed: %v", err)
	}
	allow, err = svc.EnforceRole("EDITOR", "/api/v1/admin/comments", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("revoked policy should deny")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := map[string]string{
		"":                      "/",
		"/api/v1":               "/",
		"/api/v1/posts/3":       "/posts/3",
		"/healthz":              "/healthz",
		"posts":                 "/posts",
		"/api/v1/admin/users/1": "/admin/users/1",
	}
	for in, want := range cases {
		if got := NormalizeObject(in); got != want {
			t.Fatalf("NormalizeObject(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSubjectForRole(t *testing.T) {
	if got := SubjectForRole("ADMIN"); got != "role:ADMIN" {
		t.Fatalf("SubjectForRole(ADMIN) = %s", got)
	}
	if got := SubjectForRole("role:USER"); got != "role:USER" {
		t.Fatalf("prefixed subject should pass through, got %s", got)
	}
}
