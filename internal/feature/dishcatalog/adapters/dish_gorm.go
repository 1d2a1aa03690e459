// Package adapters はdishcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"dish_backend/internal/feature/dishcatalog/domain/entity"
	"dish_backend/internal/feature/dishcatalog/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// DishModel は dishes テーブルのGORMモデルです。
type DishModel struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"column:dish_code;size:64;not null;uniqueIndex"`
	Description string `gorm:"column:dish_description;size:255;not null"`
	ImagePath   string `gorm:"column:image_path;size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (DishModel) TableName() string {
	return "dishes"
}

func toModel(e *entity.Dish) DishModel {
	return DishModel{
		ID:          e.ID,
		Code:        e.Code,
		Description: e.Description,
		ImagePath:   e.ImageReference,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEntity(m DishModel) entity.Dish {
	return entity.Dish{
		ID:             m.ID,
		Code:           m.Code,
		Description:    m.Description,
		ImageReference: m.ImagePath,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// dishGorm はDishRepositoryインターフェースのGORM実装です。
// PostgreSQL（本番）とSQLite（ローカル・テスト）の両方で動作します。
type dishGorm struct {
	db *gorm.DB
}

// dishGormがDishRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.DishRepository = (*dishGorm)(nil)

// NewDishRepository は指定されたgorm.DB接続でdishGormの新しいインスタンスを生成します。
func NewDishRepository(db *gorm.DB) *dishGorm {
	return &dishGorm{db: db}
}

// FindByCode はコードで料理を取得します。
func (r *dishGorm) FindByCode(ctx context.Context, code string) (*entity.Dish, error) {
	var m DishModel
	if err := r.db.WithContext(ctx).Where("dish_code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrDishNotFound
		}
		return nil, err
	}
	d := toEntity(m)
	return &d, nil
}

// FindByDescriptionContaining は説明に substr を大文字小文字を区別せず含む料理のうち、
// dish_code が最小のものを返します。
func (r *dishGorm) FindByDescriptionContaining(ctx context.Context, substr string) (*entity.Dish, error) {
	pattern := "%" + escapeLike(strings.ToLower(substr)) + "%"

	var m DishModel
	if err := r.db.WithContext(ctx).
		Where(`LOWER(dish_description) LIKE ? ESCAPE '\'`, pattern).
		Order("dish_code ASC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrDishNotFound
		}
		return nil, err
	}
	d := toEntity(m)
	return &d, nil
}

// Save は料理を挿入（ID == 0）または更新します。
// dish_code が重複する場合は usecase.ErrDishCodeAlreadyExists を返します。
func (r *dishGorm) Save(ctx context.Context, dish *entity.Dish) (*entity.Dish, error) {
	m := toModel(dish)

	var err error
	if m.ID == 0 {
		err = r.db.WithContext(ctx).Create(&m).Error
	} else {
		err = r.db.WithContext(ctx).Save(&m).Error
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, usecase.ErrDishCodeAlreadyExists
		}
		return nil, err
	}

	saved := toEntity(m)
	return &saved, nil
}

// Delete は料理を削除します。
func (r *dishGorm) Delete(ctx context.Context, dish *entity.Dish) error {
	res := r.db.WithContext(ctx).Where("dish_code = ?", dish.Code).Delete(&DishModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrDishNotFound
	}
	return nil
}

// ListAll はdish_code順にすべての料理を返します。
func (r *dishGorm) ListAll(ctx context.Context) ([]entity.Dish, error) {
	var rows []DishModel
	if err := r.db.WithContext(ctx).Order("dish_code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Dish, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// isUniqueViolation はPostgreSQLの23505、またはGORMが変換した重複キーエラーかを判定します。
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	// SQLiteドライバはエラーを文字列でしか返さない
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// escapeLike はLIKEのワイルドカード文字をエスケープします。
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
