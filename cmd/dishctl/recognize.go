package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dish_backend/internal/api"
	"dish_backend/internal/app/di"
	dishadapters "dish_backend/internal/feature/dishcatalog/adapters"
	"dish_backend/internal/platform/blobstore"
)

func recognizeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recognize",
		Short: "Recognize the dish in a local image file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			imagePath, _ := cmd.Flags().GetString("image")
			extractor, _ := cmd.Flags().GetString("extractor")

			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			db, closeDB, err := openCatalog(v)
			if err != nil {
				return err
			}
			defer closeDB()

			store, err := blobstore.NewLocalStore(blobstore.LoadConfig())
			if err != nil {
				return err
			}
			uc, err := di.NewRecognitionUsecase(dishadapters.NewDishRepository(db), store, extractor)
			if err != nil {
				return err
			}

			result, err := uc.Recognize(cmd.Context(), data, filepath.Base(imagePath))
			if err != nil {
				return err
			}

			out := make([]api.DetectionResponse, 0, len(result.Detections))
			for _, d := range result.Detections {
				out = append(out, api.DetectionResponse{Code: d.Code, Description: d.Description})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().String("image", "", "path to the image file")
	cmd.Flags().String("extractor", di.ExtractorGo, "feature extractor (go, opencv)")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}
