package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dishentity "dish_backend/internal/feature/dishcatalog/domain/entity"
	catalog "dish_backend/internal/feature/dishcatalog/usecase"
	"dish_backend/internal/feature/recognition/domain/entity"
)

// UnknownCodePrefix はカタログに一致しないラベルから合成したコードの接頭辞です。
const UnknownCodePrefix = "UNKNOWN_"

// DishFinder は説明文の部分一致で料理を1件探します。
// 一致しない場合は dishcatalog の ErrDishNotFound を返します。
type DishFinder interface {
	FindByDescriptionContaining(ctx context.Context, substr string) (*dishentity.Dish, error)
}

// CatalogResolver は分類ラベルを料理カタログの Detection に変換します。
type CatalogResolver struct {
	finder DishFinder
}

// NewCatalogResolver は CatalogResolver を生成します。
func NewCatalogResolver(finder DishFinder) *CatalogResolver {
	return &CatalogResolver{finder: finder}
}

// Resolve はラベルを説明に含む料理を返します。
// 一致する料理がない場合は UNKNOWN_ コードの Detection を合成し、エラーにはしません。
// ストア自体に到達できない場合のみ ErrCatalogUnavailable を返します。
func (r *CatalogResolver) Resolve(ctx context.Context, label string) (entity.Detection, error) {
	dish, err := r.finder.FindByDescriptionContaining(ctx, label)
	switch {
	case err == nil && dish != nil:
		return entity.Detection{Code: dish.Code, Description: dish.Description}, nil
	case err == nil, errors.Is(err, catalog.ErrDishNotFound):
		return entity.Detection{Code: UnknownCode(label), Description: label}, nil
	default:
		return entity.Detection{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
}

// UnknownCode はラベルから決定的に合成コードを作ります。
// "Green Salad" は "UNKNOWN_GREEN_SALAD" になります。
func UnknownCode(label string) string {
	return UnknownCodePrefix + strings.ToUpper(strings.ReplaceAll(label, " ", "_"))
}
