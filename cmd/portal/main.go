package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrisolar/portal/internal/api"
	"github.com/agrisolar/portal/internal/pkg/constants"
	"github.com/agrisolar/portal/internal/pkg/filestore"
	"github.com/agrisolar/portal/internal/pkg/logger"
	"github.com/agrisolar/portal/internal/pkg/store"
	"github.com/agrisolar/portal/internal/pkg/store/xpgx"
	"github.com/spf13/viper"
)

func main() {
	if err := loadConfig(); err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(viper.GetBool("debug")); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperDSNKey))
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer pool.Close()

	files, err := filestore.New(viper.GetString(constants.ViperUploadDirKey))
	if err != nil {
		logger.Fatal(ctx, err)
	}

	svc, err := api.NewAPIService(store.NewStore(pool), files)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(viper.GetString(constants.ViperAddrKey))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %s", err.Error())
	}
}

func loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AutomaticEnv()

	viper.SetDefault(constants.ViperAddrKey, ":8080")
	viper.SetDefault(constants.ViperUploadDirKey, "./uploads/solar_uploads")
	viper.SetDefault(constants.ViperAllowOriginKey, "http://localhost:3000")
	viper.SetDefault(constants.ViperTotalRowsKey, constants.DefaultTotalRowMarkers)

	if err := viper.ReadInConfig(); err != nil {
		// config file is optional, env vars can carry everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}
