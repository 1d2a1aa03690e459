// Command dishctl は料理カタログの保守と画像認識をコマンドラインから実行します。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	platformdb "dish_backend/internal/platform/db"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "dishctl",
		Short:         "Dish catalog and recognition tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v)
		},
	}

	root.PersistentFlags().String("config", "", "config file (yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("db-driver", "", "database driver (postgres, sqlite); defaults to DB_DRIVER")
	root.PersistentFlags().String("db-path", "", "sqlite database file; defaults to DB_PATH")

	_ = v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("database.driver", root.PersistentFlags().Lookup("db-driver"))
	_ = v.BindPFlag("database.path", root.PersistentFlags().Lookup("db-path"))

	root.AddCommand(seedCmd(v))
	root.AddCommand(recognizeCmd(v))
	root.AddCommand(tokenCmd(v))

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix("DISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("logging.level"))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", v.GetString("logging.level"), err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// openCatalog はサーバーと同じ環境変数を基に、フラグで上書きした設定でDBに接続しマイグレーションします。
func openCatalog(v *viper.Viper) (*gorm.DB, func(), error) {
	cfg := platformdb.LoadConfigFromEnv()
	if d := v.GetString("database.driver"); d != "" {
		cfg.Driver = d
	}
	if p := v.GetString("database.path"); p != "" {
		cfg.Path = p
	}

	db, err := platformdb.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := platformdb.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate: %w", err)
	}

	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}
