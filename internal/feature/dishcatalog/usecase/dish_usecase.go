package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"dish_backend/internal/feature/dishcatalog/domain/entity"
)

// MaxCodeLength は料理コードの最大文字数です。
const MaxCodeLength = 64

// DishRepository は料理カタログの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type DishRepository interface {
	// FindByCode はコードで料理を取得します。存在しない場合は ErrDishNotFound を返します。
	FindByCode(ctx context.Context, code string) (*entity.Dish, error)
	// FindByDescriptionContaining は説明に substr を含む（大文字小文字を区別しない）料理を1件返します。
	// 複数一致した場合はコードの辞書順で最小のものを返します。存在しない場合は ErrDishNotFound を返します。
	FindByDescriptionContaining(ctx context.Context, substr string) (*entity.Dish, error)
	// Save は料理を挿入または更新します。ID が 0 の場合は挿入です。
	// コードが重複する場合は ErrDishCodeAlreadyExists を返します。
	Save(ctx context.Context, dish *entity.Dish) (*entity.Dish, error)
	// Delete は料理を削除します。
	Delete(ctx context.Context, dish *entity.Dish) error
	// ListAll はコード順にすべての料理を返します。
	ListAll(ctx context.Context) ([]entity.Dish, error)
}

// DefaultDishes はカタログが空のときに投入される初期データです。
var DefaultDishes = []entity.Dish{
	{Code: "DISH_001", Description: "Red Apple", ImageReference: "images/apples.jpg"},
	{Code: "DISH_002", Description: "Banana", ImageReference: "images/bananas.jpg"},
	{Code: "DISH_003", Description: "Orange", ImageReference: "images/oranges.jpg"},
	{Code: "DISH_004", Description: "Grilled Chicken", ImageReference: "images/chicken.jpg"},
	{Code: "DISH_005", Description: "Beef Steak", ImageReference: "images/steak.jpg"},
	{Code: "DISH_006", Description: "Vegetable Salad", ImageReference: "images/salad.jpg"},
	{Code: "DISH_007", Description: "Spaghetti Bolognese", ImageReference: "images/spaghetti.jpg"},
	{Code: "DISH_008", Description: "Pizza Margherita", ImageReference: "images/pizza.jpg"},
	{Code: "DISH_009", Description: "Rice Bowl", ImageReference: "images/rice.jpg"},
	{Code: "DISH_010", Description: "Sushi Platter", ImageReference: "images/sushi.jpg"},
}

// DishUsecase は料理カタログのビジネスロジックを提供します。
type DishUsecase struct {
	repo DishRepository
}

// NewDishUsecase は指定されたリポジトリで DishUsecase を生成します。
func NewDishUsecase(r DishRepository) *DishUsecase {
	return &DishUsecase{repo: r}
}

// ListDishes はすべての料理を返します。
func (u *DishUsecase) ListDishes(ctx context.Context) ([]entity.Dish, error) {
	return u.repo.ListAll(ctx)
}

// GetDish はコードで料理を取得します。
func (u *DishUsecase) GetDish(ctx context.Context, code string) (*entity.Dish, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidDish)
	}
	return u.repo.FindByCode(ctx, code)
}

// CreateDish は新しい料理を登録します。
func (u *DishUsecase) CreateDish(ctx context.Context, code, description, imageRef string) (*entity.Dish, error) {
	d := &entity.Dish{
		Code:           strings.TrimSpace(code),
		Description:    strings.TrimSpace(description),
		ImageReference: strings.TrimSpace(imageRef),
	}
	if err := validate(d); err != nil {
		return nil, err
	}
	return u.repo.Save(ctx, d)
}

// UpdateDish は既存の料理の説明と参照画像を更新します。コードは変更できません。
func (u *DishUsecase) UpdateDish(ctx context.Context, code, description, imageRef string) (*entity.Dish, error) {
	existing, err := u.GetDish(ctx, code)
	if err != nil {
		return nil, err
	}
	existing.Description = strings.TrimSpace(description)
	existing.ImageReference = strings.TrimSpace(imageRef)
	if err := validate(existing); err != nil {
		return nil, err
	}
	return u.repo.Save(ctx, existing)
}

// DeleteDish はコードで料理を削除します。
func (u *DishUsecase) DeleteDish(ctx context.Context, code string) error {
	existing, err := u.GetDish(ctx, code)
	if err != nil {
		return err
	}
	return u.repo.Delete(ctx, existing)
}

// SeedDefaults はカタログが空の場合に DefaultDishes を投入し、投入件数を返します。
func (u *DishUsecase) SeedDefaults(ctx context.Context) (int, error) {
	existing, err := u.repo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list dishes: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	n := 0
	for _, d := range DefaultDishes {
		if _, err := u.repo.Save(ctx, &d); err != nil {
			if errors.Is(err, ErrDishCodeAlreadyExists) {
				continue
			}
			return n, fmt.Errorf("failed to seed %s: %w", d.Code, err)
		}
		n++
	}
	slog.Info("dish catalog seeded", "count", n)
	return n, nil
}

func validate(d *entity.Dish) error {
	if d.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidDish)
	}
	if len(d.Code) > MaxCodeLength {
		return fmt.Errorf("%w: code exceeds %d characters", ErrInvalidDish, MaxCodeLength)
	}
	if d.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidDish)
	}
	return nil
}
