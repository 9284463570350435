package utils_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"voyago/utils"

	"github.com/stretchr/testify/assert"
)

func TestCheckHealth_ProbesHTTPCollaborators(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
	}))
	defer up.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()

	status := utils.CheckHealth(context.Background(), utils.HealthTargets{
		ProfileURL:   up.URL,
		GeneratorURL: down.URL,
	})

	assert.True(t, status.Profile)
	assert.False(t, status.Generator)
	assert.False(t, status.CheckedAt.IsZero())
}

func TestCheckHealth_AnyResponseCountsAsReachable(t *testing.T) {
	// A 5xx still proves the service is up; only transport failure is down.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	status := utils.CheckHealth(context.Background(), utils.HealthTargets{
		ProfileURL: srv.URL,
	})

	assert.True(t, status.Profile)
}

func TestCheckHealth_MissingTargetsReportDown(t *testing.T) {
	status := utils.CheckHealth(context.Background(), utils.HealthTargets{})

	assert.False(t, status.Catalog)
	assert.False(t, status.SessionCache)
	assert.False(t, status.Profile)
	assert.False(t, status.Generator)
}
