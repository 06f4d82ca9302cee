package main

import (
	"os"

	_ "github.com/jeopardy-trainer/backend/docs" // generated swagger docs
)

// @title           Jeopardy Trainer API
// @version         1.0
// @description     Quiz sessions over markdown question banks, least exposed questions first.

// @host      localhost:8080
// @BasePath  /

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
