package main

import (
	"github.com/joho/godotenv"

	"github.com/omidvesal/intake_backend/cmd"
)

func main() {
	// A .env file is optional; deployments usually set variables directly.
	_ = godotenv.Load()

	cmd.Execute()
}
