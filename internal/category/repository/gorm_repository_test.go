package repository

import (
	"testing"

	"redalert-backend/internal/category/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&domain.Category{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCategoryCRUD(t *testing.T) {
	repo := NewGormCategoryRepository(newTestDB(t))

	live := &domain.Category{Name: "Live Classes", FromFilter: "school.edu", SubjectKeywords: "LIVE,CALL", IsActive: true}
	if err := repo.Create(live); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if live.ID == "" {
		t.Fatal("Create() did not assign an ID")
	}

	got, err := repo.FindByID(live.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID() = %v, %v", got, err)
	}
	if got.GmailQuery() != "from:school.edu subject:(LIVE OR CALL) is:unread" {
		t.Errorf("GmailQuery() = %q", got.GmailQuery())
	}

	byName, err := repo.FindByName("Live Classes")
	if err != nil || byName == nil || byName.ID != live.ID {
		t.Errorf("FindByName() = %v, %v", byName, err)
	}

	got.Description = "updated"
	if err := repo.Update(got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	reloaded, _ := repo.FindByID(live.ID)
	if reloaded.Description != "updated" {
		t.Errorf("Description = %q after update", reloaded.Description)
	}

	if err := repo.Delete(live.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	missing, err := repo.FindByID(live.ID)
	if err != nil || missing != nil {
		t.Errorf("FindByID() after delete = %v, %v; want nil, nil", missing, err)
	}
}

func TestFindActive(t *testing.T) {
	repo := NewGormCategoryRepository(newTestDB(t))
	for _, c := range []*domain.Category{
		{Name: "B active", IsActive: true},
		{Name: "A inactive", IsActive: false},
		{Name: "A active", IsActive: true},
	} {
		if err := repo.Create(c); err != nil {
			t.Fatalf("Create(%q) error = %v", c.Name, err)
		}
	}

	active, err := repo.FindActive()
	if err != nil {
		t.Fatalf("FindActive() error = %v", err)
	}
	if len(active) != 2 || active[0].Name != "A active" || active[1].Name != "B active" {
		t.Errorf("FindActive() = %+v", active)
	}

	all, _ := repo.FindAll()
	if len(all) != 3 {
		t.Errorf("FindAll() returned %d, want 3", len(all))
	}
}

func TestCreateDuplicateNameFails(t *testing.T) {
	repo := NewGormCategoryRepository(newTestDB(t))
	if err := repo.Create(&domain.Category{Name: "Webinars"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(&domain.Category{Name: "Webinars"}); err == nil {
		t.Error("Create() duplicate name error = nil, want unique violation")
	}
}
