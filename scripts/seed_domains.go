package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/config"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/services"
)

// SeedDomains contains the initial item catalog
var SeedDomains = []models.DomainPayload{
	{Name: "Cisterna de Placa", Group: models.GroupInfrastructure, Description: description("Cisterna de 16 mil litros para água de consumo")},
	{Name: "Cisterna Calçadão", Group: models.GroupInfrastructure, Description: description("Cisterna de 52 mil litros para produção")},
	{Name: "Barreiro Trincheira", Group: models.GroupInfrastructure},
	{Name: "Trator", Group: models.GroupMachinery},
	{Name: "Forrageira", Group: models.GroupMachinery},
	{Name: "Enxada", Group: models.GroupOther},
	{Name: "Galinhas", Group: models.GroupAnimals},
	{Name: "Caprinos", Group: models.GroupAnimals},
	{Name: "Quintal Produtivo", Group: models.GroupProductive},
}

func description(s string) *string {
	return &s
}

type staticToken string

func (t staticToken) Token() string { return string(t) }

func main() {
	fmt.Println("🌱 Seeding domain catalog...")

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cpf, password := os.Getenv("SEED_CPF"), os.Getenv("SEED_PASSWORD")
	if cpf == "" || password == "" {
		log.Fatal("SEED_CPF and SEED_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	gateway := apiclient.NewGateway(config.AppConfig.BackendURL, config.AppConfig.BackendTimeout, nil)

	login, err := services.NewAuthService(gateway.For(staticToken(""), nil)).Login(ctx, cpf, password)
	if err != nil {
		log.Fatalf("Failed to log in: %v", err)
	}

	domains := services.NewDomainService(gateway.For(staticToken(login.AccessToken), nil))

	existing, err := domains.GetAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list domains: %v", err)
	}
	known := make(map[string]bool, len(existing))
	for _, d := range existing {
		known[strings.ToLower(strings.TrimSpace(d.Name))] = true
	}

	created, skipped := 0, 0
	for _, seed := range SeedDomains {
		if known[strings.ToLower(seed.Name)] {
			fmt.Printf("  ↷ [%s] %s already exists\n", seed.Group, seed.Name)
			skipped++
			continue
		}
		if _, err := domains.Create(ctx, seed); err != nil {
			log.Fatalf("Failed to create %q: %v", seed.Name, err)
		}
		fmt.Printf("  ✓ [%s] %s\n", seed.Group, seed.Name)
		created++
	}

	fmt.Printf("\n🎉 Seeding completed: %d created, %d skipped\n", created, skipped)
}
