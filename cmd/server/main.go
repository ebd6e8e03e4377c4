package main

import (
	"log"
	"net/http"

	"taskpad/internal/config"
	"taskpad/internal/serverapp"
)

func main() {
	cfg, err := config.Load("taskpad.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("taskpad listening on %s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
