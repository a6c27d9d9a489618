package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := loadDotEnv(".env"); err != nil {
		_, _ = os.Stderr.WriteString("failed to load .env: " + err.Error() + "\n")
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
