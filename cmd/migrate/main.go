package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("Migration command failed")
		os.Exit(1)
	}
}
