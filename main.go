package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/DistrictLens/DL-Backend/internal/boundaries"
	"github.com/DistrictLens/DL-Backend/internal/config"
	"github.com/DistrictLens/DL-Backend/internal/db"
	"github.com/DistrictLens/DL-Backend/internal/metrics"
	"github.com/DistrictLens/DL-Backend/internal/middleware"
	"github.com/DistrictLens/DL-Backend/internal/scenario"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("Failed to load chamber config: ", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	store := buildBoundaryStore(cfg)
	cache := buildResultCache()

	boundaryHandler := boundaries.NewHandler(store, cache)
	scenarioHandler := scenario.NewHandler(
		scenario.NewSessionStore(0),
		chamberSetups(cfg),
	)

	rateLimit := middleware.RateLimitFromEnv()
	adminOnly := middleware.AdminTokenMiddleware(os.Getenv("ADMIN_TOKEN_HASH"))

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Mount("/districts", boundaryHandler.SetupRoutes(rateLimit, adminOnly))
	r.Mount("/scenarios", scenarioHandler.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}

// buildBoundaryStore wires the store to its transport: static GeoJSON over
// HTTP by default, or the Postgres snapshot table when BOUNDARY_SOURCE=db.
func buildBoundaryStore(cfg *config.Config) *boundaries.Store {
	house := cfg.Chambers["house"]
	senate := cfg.Chambers["senate"]

	if os.Getenv("BOUNDARY_SOURCE") == "db" {
		db.Connect()
		sources := map[boundaries.Chamber]boundaries.Source{
			boundaries.ChamberHouse:  {URL: string(boundaries.ChamberHouse), PropertyKey: house.DistrictProperty},
			boundaries.ChamberSenate: {URL: string(boundaries.ChamberSenate), PropertyKey: senate.DistrictProperty},
		}
		return boundaries.NewStore(boundaries.NewDBFetcher(db.DB), sources)
	}

	sources := map[boundaries.Chamber]boundaries.Source{
		boundaries.ChamberHouse:  {URL: house.BoundaryURL, PropertyKey: house.DistrictProperty},
		boundaries.ChamberSenate: {URL: senate.BoundaryURL, PropertyKey: senate.DistrictProperty},
	}
	return boundaries.NewStore(boundaries.NewHTTPFetcher(), sources)
}

// buildResultCache connects the optional Redis lookup cache; without
// REDIS_ADDR the cache is a no-op and every lookup hits the resolver.
func buildResultCache() *boundaries.ResultCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	log.Printf("[main] lookup cache enabled via redis at %s", addr)
	return boundaries.NewResultCache(rdb, 24*time.Hour)
}

func chamberSetups(cfg *config.Config) map[string]scenario.ChamberSetup {
	setups := make(map[string]scenario.ChamberSetup, len(cfg.Chambers))
	for name, ch := range cfg.Chambers {
		setups[name] = scenario.ChamberSetup{
			Baseline: ch.Baseline,
			Parties:  ch.Parties,
		}
	}
	return setups
}
