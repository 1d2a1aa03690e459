package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dish_backend/internal/feature/dishcatalog/domain/entity"
	"dish_backend/internal/feature/dishcatalog/usecase"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&DishModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedDish はテスト用の料理データをデータベースに作成します。
func seedDish(t *testing.T, db *gorm.DB, code, description, imagePath string) *DishModel {
	t.Helper()

	m := &DishModel{Code: code, Description: description, ImagePath: imagePath}
	require.NoError(t, db.Create(m).Error, "failed to seed dish")
	return m
}

func TestNewDishRepository(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewDishRepository(db)

	assert.NotNil(t, repo, "repository should not be nil")
	assert.NotNil(t, repo.db, "database connection should not be nil")
}

// TestDishGorm_SaveThenFindByCode は保存した料理をコードで取得できることを検証します。
func TestDishGorm_SaveThenFindByCode(t *testing.T) {
	t.Parallel()

	repo := NewDishRepository(setupTestDB(t))
	ctx := context.Background()

	saved, err := repo.Save(ctx, &entity.Dish{
		Code:           "DISH_099",
		Description:    "Mapo Tofu",
		ImageReference: "images/tofu.jpg",
	})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID, "surrogate id should be assigned")

	got, err := repo.FindByCode(ctx, "DISH_099")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Mapo Tofu", got.Description)
	assert.Equal(t, "images/tofu.jpg", got.ImageReference)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set")
}

func TestDishGorm_FindByCode_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewDishRepository(setupTestDB(t))

	_, err := repo.FindByCode(context.Background(), "DISH_404")

	assert.ErrorIs(t, err, usecase.ErrDishNotFound)
}

func TestDishGorm_Save_DuplicateCode(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedDish(t, db, "DISH_001", "Red Apple", "")
	repo := NewDishRepository(db)

	_, err := repo.Save(context.Background(), &entity.Dish{Code: "DISH_001", Description: "Another Apple"})

	assert.ErrorIs(t, err, usecase.ErrDishCodeAlreadyExists)
}

func TestDishGorm_Save_UpdateExisting(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewDishRepository(db)
	ctx := context.Background()

	created, err := repo.Save(ctx, &entity.Dish{Code: "DISH_002", Description: "Banana"})
	require.NoError(t, err)

	created.Description = "Ripe Banana"
	created.ImageReference = "images/ripe.jpg"
	_, err = repo.Save(ctx, created)
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "update must not insert a second row")
	assert.Equal(t, "Ripe Banana", all[0].Description)
	assert.Equal(t, "images/ripe.jpg", all[0].ImageReference)
}

// TestDishGorm_FindByDescriptionContaining は説明の部分一致検索を各種シナリオで検証します。
func TestDishGorm_FindByDescriptionContaining(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		seed     [][2]string
		query    string
		wantCode string
		wantErr  error
	}{
		{
			name:     "success: exact description",
			seed:     [][2]string{{"DISH_001", "Red Apple"}},
			query:    "Red Apple",
			wantCode: "DISH_001",
		},
		{
			name:     "success: case-insensitive",
			seed:     [][2]string{{"DISH_001", "Red Apple"}},
			query:    "rED aPPLE",
			wantCode: "DISH_001",
		},
		{
			name:     "success: substring of longer description",
			seed:     [][2]string{{"DISH_011", "Fresh Green Salad Bowl"}},
			query:    "Green Salad",
			wantCode: "DISH_011",
		},
		{
			name: "success: lowest code wins on multiple matches",
			seed: [][2]string{
				{"DISH_020", "Orange Juice"},
				{"DISH_003", "Orange"},
				{"DISH_015", "Blood Orange"},
			},
			query:    "orange",
			wantCode: "DISH_003",
		},
		{
			name:    "not found: no description contains label",
			seed:    [][2]string{{"DISH_006", "Vegetable Salad"}},
			query:   "Green Salad",
			wantErr: usecase.ErrDishNotFound,
		},
		{
			name:    "not found: wildcard characters are literal",
			seed:    [][2]string{{"DISH_001", "Red Apple"}},
			query:   "R%d_Apple",
			wantErr: usecase.ErrDishNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			for _, s := range tt.seed {
				seedDish(t, db, s[0], s[1], "")
			}
			repo := NewDishRepository(db)

			got, err := repo.FindByDescriptionContaining(context.Background(), tt.query)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestDishGorm_Delete(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedDish(t, db, "DISH_001", "Red Apple", "")
	repo := NewDishRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, &entity.Dish{Code: "DISH_001"}))

	_, err := repo.FindByCode(ctx, "DISH_001")
	assert.ErrorIs(t, err, usecase.ErrDishNotFound)

	err = repo.Delete(ctx, &entity.Dish{Code: "DISH_001"})
	assert.ErrorIs(t, err, usecase.ErrDishNotFound)
}

func TestDishGorm_ListAll_SortedByCode(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedDish(t, db, "DISH_003", "Orange", "")
	seedDish(t, db, "DISH_001", "Red Apple", "")
	seedDish(t, db, "DISH_002", "Banana", "")
	repo := NewDishRepository(db)

	dishes, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	codes := make([]string, 0, len(dishes))
	for _, d := range dishes {
		codes = append(codes, d.Code)
	}
	assert.Equal(t, []string{"DISH_001", "DISH_002", "DISH_003"}, codes)
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"apple", "apple"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`c:\tmp`, `c:\\tmp`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, escapeLike(tt.input))
		})
	}
}
