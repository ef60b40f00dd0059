package repository

import (
	"testing"

	"github.com/inkwell-blog/inkwell/internal/models"
)

func TestUserGetByEmailMissReturnsNil(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if user != nil {
		t.Fatalf("miss should return nil user")
	}
}

func TestUserListFilters(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewUserRepository(db)

	users := []models.User{
		{Email: "alice@example.com", FirstName: "Alice", LastName: "Reed", Role: "ADMIN", IsActive: true, PasswordHash: "x"},
		{Email: "bob@example.com", FirstName: "Bob", LastName: "Stone", Role: "USER", IsActive: true, PasswordHash: "x"},
		{Email: "carol@example.com", FirstName: "Carol", LastName: "Reed", Role: "USER", IsActive: false, PasswordHash: "x"},
	}
	for i := range users {
		if err := repo.Create(&users[i]); err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}

	_, total, err := repo.List(UserListFilter{Keyword: "Reed"})
	if err != nil {
		t.Fatalf("list by keyword failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("keyword total want 2 got %d", total)
	}

	_, total, err = repo.List(UserListFilter{Role: "ADMIN"})
	if err != nil {
		t.Fatalf("list by role failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("role total want 1 got %d", total)
	}

	inactive := false
	listed, total, err := repo.List(UserListFilter{IsActive: &inactive})
	if err != nil {
		t.Fatalf("list by is_active failed: %v", err)
	}
	if total != 1 || listed[0].Email != "carol@example.com" {
		t.Fatalf("is_active filter should match carol only")
	}
}

func TestUserCreatePersistsInactiveFlag(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewUserRepository(db)

	user := models.User{Email: "disabled@example.com", FirstName: "D", LastName: "A", Role: "USER", IsActive: false, PasswordHash: "x"}
	if err := repo.Create(&user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	reloaded, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("inactive flag must survive the insert")
	}
}

func TestUserTouchLastLoginAndResetToken(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewUserRepository(db)

	user := models.User{Email: "login@example.com", FirstName: "L", LastName: "T", Role: "USER", IsActive: true, PasswordHash: "x"}
	if err := repo.Create(&user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if user.LastLoginAt != nil {
		t.Fatalf("fresh user should have no last login")
	}

	if err := repo.TouchLastLogin(user.ID); err != nil {
		t.Fatalf("touch last login failed: %v", err)
	}
	reloaded, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.LastLoginAt == nil {
		t.Fatalf("last login should be set")
	}

	if _, err := repo.Update(user.ID, map[string]interface{}{"password_reset_token": "token-abc"}); err != nil {
		t.Fatalf("set reset token failed: %v", err)
	}
	byToken, err := repo.GetByResetToken("token-abc")
	if err != nil {
		t.Fatalf("get by reset token failed: %v", err)
	}
	if byToken == nil || byToken.ID != user.ID {
		t.Fatalf("reset token lookup should find the user")
	}
	if byToken, err := repo.GetByResetToken(""); err != nil || byToken != nil {
		t.Fatalf("empty token should miss without error")
	}
}
