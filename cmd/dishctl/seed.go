package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	dishadapters "dish_backend/internal/feature/dishcatalog/adapters"
	dishusecase "dish_backend/internal/feature/dishcatalog/usecase"
)

func seedCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with the default dishes",
		Long: `Insert the ten default dishes (DISH_001 to DISH_010).

Nothing is inserted when the catalog already has dishes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, closeDB, err := openCatalog(v)
			if err != nil {
				return err
			}
			defer closeDB()

			uc := dishusecase.NewDishUsecase(dishadapters.NewDishRepository(db))
			n, err := uc.SeedDefaults(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d dishes\n", n)
			return nil
		},
	}
}
