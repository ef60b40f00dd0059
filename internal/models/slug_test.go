package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		name    string
		current string
		source  string
		want    string
	}{
		{"empty current derives from source", "", "Hello World", "hello-world"},
		{"matching current stays", "hello-world", "Hello World", "hello-world"},
		{"stale current is regenerated", "old-title", "Hello World", "hello-world"},
		{"empty source keeps current", "anything", "", "anything"},
		{"accented source is transliterated", "", "Crème Brûlée", "creme-brulee"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveSlug(tc.current, tc.source)
			if got != tc.want {
				t.Fatalf("DeriveSlug(%q, %q) = %q, want %q", tc.current, tc.source, got, tc.want)
			}
		})
	}
}

func setupModelsTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := MigrateAll(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func TestCategorySlugDerivedOnSave(t *testing.T) {
	db := setupModelsTest(t)

	category := Category{Name: "Distributed Systems"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if category.Slug != "distributed-systems" {
		t.Fatalf("slug want distributed-systems got %s", category.Slug)
	}

	category.Name = "Databases"
	if err := db.Save(&category).Error; err != nil {
		t.Fatalf("save category failed: %v", err)
	}
	if category.Slug != "databases" {
		t.Fatalf("slug after rename want databases got %s", category.Slug)
	}
}

func TestPostSlugUniqueViolationTranslated(t *testing.T) {
	db := setupModelsTest(t)

	author := User{Email: "author@slug.test", FirstName: "A", LastName: "B", PasswordHash: "x"}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("create author failed: %v", err)
	}

	first := Post{Title: "Same Title", Summary: "s", Body: JSON{"k": "v"}, AuthorID: author.ID}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create first post failed: %v", err)
	}

	second := Post{Title: "Same Title", Summary: "s", Body: JSON{"k": "v"}, AuthorID: author.ID}
	err := db.Create(&second).Error
	if err == nil {
		t.Fatalf("expected duplicate slug error")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected translated duplicate key error, got %v", err)
	}
}
