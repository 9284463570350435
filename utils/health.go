package utils

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus reports reachability of everything the planner depends on:
// the Mongo catalog, the Redis session cache, and the two HTTP collaborators.
type HealthStatus struct {
	Catalog      bool      `json:"catalog"`
	SessionCache bool      `json:"sessionCache"`
	Profile      bool      `json:"profile"`
	Generator    bool      `json:"generator"`
	CheckedAt    time.Time `json:"checkedAt"`
}

// HealthTargets names the collaborators the monitor probes. Nil clients and
// empty URLs report as down.
type HealthTargets struct {
	Mongo        *mongo.Client
	SessionCache *redis.Client
	ProfileURL   string
	GeneratorURL string
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

var healthHTTP = &http.Client{Timeout: 5 * time.Second}

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth probes every collaborator once.
func CheckHealth(ctx context.Context, t HealthTargets) HealthStatus {
	status := HealthStatus{CheckedAt: time.Now()}
	if t.Mongo != nil {
		status.Catalog = t.Mongo.Ping(ctx, nil) == nil
	}
	if t.SessionCache != nil {
		status.SessionCache = t.SessionCache.Ping(ctx).Err() == nil
	}
	status.Profile = probeHTTP(ctx, t.ProfileURL)
	status.Generator = probeHTTP(ctx, t.GeneratorURL)
	return status
}

// probeHTTP counts any HTTP response as reachable; only a transport failure
// marks the collaborator down.
func probeHTTP(ctx context.Context, baseURL string) bool {
	if baseURL == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := healthHTTP.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(t HealthTargets) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			status := CheckHealth(ctx, t)
			cancel()

			mu.Lock()
			currentHealth = status
			mu.Unlock()
		}
	}()
}
