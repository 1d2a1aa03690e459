package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	jwtmw "dish_backend/internal/platform/jwt"
)

func tokenCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator token for catalog maintenance",
		Long: `Issue an HS256 token carrying the catalog:write scope.

The signing key is read from JWT_SECRET, the same variable the server uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			secret := v.GetString("jwt_secret")
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			tok, err := jwtmw.NewGenerator(secret, ttl).GenerateToken(subject, jwtmw.ScopeCatalogWrite)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().String("subject", "", "operator name recorded in the sub claim")
	cmd.Flags().Duration("ttl", 12*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	_ = v.BindEnv("jwt_secret", jwtmw.EnvKeyJWTSecret)
	return cmd
}
