package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/mkrylova/awards-voting/internal/config"
	"github.com/mkrylova/awards-voting/internal/repo/postgres"
)

// Creates a demo voting with a few nominations and participants, handy for
// local development.
func main() {
	var (
		configPath  string
		nominations int
		perNom      int
	)

	flag.StringVar(&configPath, "config", "config/local.yaml", "path to the config file")
	flag.IntVar(&nominations, "nominations", 3, "number of nominations to create")
	flag.IntVar(&perNom, "participants", 4, "participants per nomination")
	flag.Parse()

	cfg := config.Load(configPath)

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer storage.Close()

	ctx := context.Background()
	now := time.Now()

	votingID, err := storage.SaveVoting(ctx,
		fmt.Sprintf("%s Awards %d", gofakeit.Company(), now.Year()),
		gofakeit.Sentence(10),
		now,
		now.Add(5*24*time.Hour),
	)
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < nominations; i++ {
		nominationID, err := storage.SaveNomination(ctx, votingID,
			fmt.Sprintf("Best %s", gofakeit.BuzzWord()),
			gofakeit.Sentence(8),
		)
		if err != nil {
			log.Fatal(err)
		}

		for j := 0; j < perNom; j++ {
			if _, err := storage.SaveParticipant(ctx, nominationID,
				gofakeit.Name(),
				gofakeit.JobTitle(),
				nil,
			); err != nil {
				log.Fatal(err)
			}
		}
	}

	fmt.Printf("created voting %d with %d nominations\n", votingID, nominations)
}
