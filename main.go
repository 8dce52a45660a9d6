package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpLayer "affordability-engine/http"
	"affordability-engine/repository"
	"affordability-engine/service"
)

const cacheSize = 1024

func main() {
	config := loadConfig()

	var cache repository.CacheRepository
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = repository.NewRedisCache(addr)
	} else {
		lruCache, err := repository.NewLRUCache(cacheSize)
		if err != nil {
			log.Fatalf("Error creating cache: %v", err)
		}
		cache = lruCache
	}

	history := repository.NewEstimateRepositoryMemory()

	mortgage := service.NewMortgageService()
	income := service.NewIncomeDistribution()
	estimator := service.NewEstimatorService(mortgage, income, config, history, cache)
	radius := service.NewRadiusService(mortgage, income, estimator, config)

	estimateHandler := httpLayer.NewEstimateHandler(estimator)
	compareHandler := httpLayer.NewCompareHandler(estimator)
	radiusHandler := httpLayer.NewRadiusHandler(radius)
	distributionHandler := httpLayer.NewDistributionHandler(estimator)
	referenceHandler := httpLayer.NewReferenceHandler(config)

	rateLimiter := httpLayer.NewRateLimiter(30, time.Minute)
	defer rateLimiter.Stop()

	limited := func(h http.HandlerFunc) http.Handler {
		return httpLayer.RateLimitMiddleware(rateLimiter, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/affordability/estimate", limited(estimateHandler.Estimate))
	mux.Handle("/affordability/compare", limited(compareHandler.Compare))
	mux.Handle("/affordability/radius", limited(radiusHandler.EstimateRadius))
	mux.Handle("/affordability/cities", limited(radiusHandler.CompareCities))
	mux.Handle("/affordability/nearest", limited(radiusHandler.NearestCity))
	mux.Handle("/affordability/distribution", limited(distributionHandler.Curve))
	mux.Handle("/affordability/reference", limited(referenceHandler.Reference))

	server := &http.Server{
		Addr:         ":8080",
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Println("Affordability API listening on http://localhost:8080")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}

func loadConfig() *repository.ConfigRepository {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.toml"
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("No config file at %s, using built-in reference data", path)
		return repository.NewConfigRepository()
	}
	config, err := repository.LoadConfigRepository(path)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return config
}
