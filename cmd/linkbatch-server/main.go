package main

import (
	"log"

	"github.com/MrSnakeDoc/linkbatch/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ linkbatch failed to start: %v", err)
	}
}
