package usecase

import (
	"errors"
	"testing"

	"redalert-backend/internal/category/domain"
	"redalert-backend/internal/category/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestUsecase(t *testing.T) CategoryUsecase {
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
	return NewCategoryUsecase(repository.NewGormCategoryRepository(db))
}

func TestCategoryUsecase_Create(t *testing.T) {
	uc := newTestUsecase(t)

	created, err := uc.Create(CategoryInput{Name: " Classes ", SubjectKeywords: "aula, prova"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Name != "Classes" || !created.IsActive {
		t.Errorf("created = %+v", created)
	}
	if got := created.GmailQuery(); got != "subject:(aula OR prova) is:unread" {
		t.Errorf("GmailQuery() = %q", got)
	}

	if _, err := uc.Create(CategoryInput{Name: "Classes"}); !errors.Is(err, domain.ErrDuplicateCategoryName) {
		t.Errorf("duplicate Create() error = %v, want ErrDuplicateCategoryName", err)
	}

	inactive := false
	other, err := uc.Create(CategoryInput{Name: "Other", IsActive: &inactive})
	if err != nil || other.IsActive {
		t.Fatalf("Create(inactive) = %+v, %v", other, err)
	}
	active, _ := uc.GetActive()
	if len(active) != 1 || active[0].Name != "Classes" {
		t.Errorf("GetActive() = %v", active)
	}
}

func TestCategoryUsecase_Update(t *testing.T) {
	uc := newTestUsecase(t)
	a, _ := uc.Create(CategoryInput{Name: "A"})
	b, _ := uc.Create(CategoryInput{Name: "B"})

	tests := []struct {
		name    string
		id      string
		input   CategoryInput
		wantErr error
	}{
		{name: "keep own name", id: a.ID, input: CategoryInput{Name: "A", FromFilter: "x@y.z"}},
		{name: "rename to taken", id: a.ID, input: CategoryInput{Name: "B"}, wantErr: domain.ErrDuplicateCategoryName},
		{name: "unknown id", id: "missing", input: CategoryInput{Name: "C"}, wantErr: domain.ErrCategoryNotFound},
		{name: "rename free", id: b.ID, input: CategoryInput{Name: "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Update(tt.id, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Update() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	got, _ := uc.GetByID(a.ID)
	if got.FromFilter != "x@y.z" {
		t.Errorf("FromFilter = %q", got.FromFilter)
	}
}

func TestCategoryUsecase_ToggleAndDelete(t *testing.T) {
	uc := newTestUsecase(t)
	c, _ := uc.Create(CategoryInput{Name: "A"})

	toggled, err := uc.Toggle(c.ID)
	if err != nil || toggled.IsActive {
		t.Fatalf("Toggle() = %+v, %v", toggled, err)
	}
	toggled, _ = uc.Toggle(c.ID)
	if !toggled.IsActive {
		t.Error("second Toggle() should reactivate")
	}

	if err := uc.Delete(c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := uc.Delete(c.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Delete(missing) error = %v", err)
	}
}
