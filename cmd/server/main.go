package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/cache"
	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/db"
	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	db.Init()
	cache.Init()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("buzzcard server listening on :" + port)
	if err := http.ListenAndServe(":"+port, router.RegisterRouter()); err != nil {
		log.Fatal("server failed: ", err)
	}
}
