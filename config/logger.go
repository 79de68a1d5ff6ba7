package config

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.Logger = zap.NewNop()

func InitLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
}
