// Command photoprobe runs the photo query rules and providers for one place
// so the dictionaries and API keys can be checked without generating an
// itinerary.
//
//	go run ./cmd/photoprobe -title "午餐：南翔馒头店" -destination 上海
//	go run ./cmd/photoprobe -query "Shanghai Bund skyline" -count 5
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
	"github.com/NomadCrew/nomad-crew-itinerary/internal/imagesearch"
	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/pkg/pexels"
	"github.com/NomadCrew/nomad-crew-itinerary/pkg/unsplash"
	"github.com/joho/godotenv"
)

func main() {
	title := flag.String("title", "", "activity title to run through the query rules")
	destination := flag.String("destination", "", "trip destination used with -title")
	query := flag.String("query", "", "raw provider query, bypasses the rules")
	count := flag.Int("count", 3, "photos to request per provider")
	flag.Parse()

	if *title == "" && *query == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	logger.InitLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	queries := []string{*query}
	if *query == "" {
		dict, err := imagesearch.LoadDictionaries(cfg.Photos.DictionaryFile)
		if err != nil {
			log.Fatalf("Failed to load dictionaries: %v", err)
		}
		cat, planned := imagesearch.NewRules(dict).Plan(*title, *destination)
		fmt.Printf("category: %s\n", cat)
		for i, q := range planned {
			fmt.Printf("query %d: %s\n", i+1, q)
		}
		queries = planned
	}

	var sources []imagesearch.PhotoSource
	if cfg.Photos.UnsplashAccessKey != "" {
		sources = append(sources, unsplash.NewClient(cfg.Photos.UnsplashAccessKey))
	}
	if cfg.Photos.PexelsAPIKey != "" {
		sources = append(sources, pexels.NewClient(cfg.Photos.PexelsAPIKey))
	}
	if len(sources) == 0 {
		log.Fatalf("Neither UNSPLASH_ACCESS_KEY nor PEXELS_API_KEY is set")
	}

	timeout := time.Duration(cfg.Photos.TimeoutSeconds) * time.Second
	for _, src := range sources {
		for _, q := range queries {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			urls, err := src.SearchPhotos(ctx, q, *count)
			cancel()
			if err != nil {
				fmt.Printf("[%s] %q failed: %v\n", src.Name(), q, err)
				continue
			}
			fmt.Printf("[%s] %q returned %d photos\n", src.Name(), q, len(urls))
			for _, u := range urls {
				fmt.Printf("  %s  (id %s)\n", u, imagesearch.ImageID(u))
			}
		}
	}
}
