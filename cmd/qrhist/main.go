package main

import (
	"log"

	"github.com/MrSnakeDoc/qrhist/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ qrhist failed: %v", err)
	}
}
