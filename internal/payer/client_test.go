package payer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianrcm/denialflow/internal/model"
)

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("", "key")
	assert.Error(t, err)
}

func TestVerifyEligibility(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/eligibility", r.URL.Path)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "PAT-1", req["patient_id"])
		assert.Equal(t, "2025-03-10", req["service_date"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"eligible":         true,
			"coverage_details": map[string]string{"plan": "HMO"},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key-1")
	require.NoError(t, err)

	result, err := client.VerifyEligibility(context.Background(), "PAT-1",
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Equal(t, "HMO", result.CoverageDetails["plan"])
}

func TestRequestAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/authorizations", r.URL.Path)

		var denial model.DenialInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&denial))
		assert.Equal(t, "CLM-1", denial.ClaimID)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"approved":    true,
			"auth_number": "AUTH-42",
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	require.NoError(t, err)

	result, err := client.RequestAuthorization(context.Background(), model.DenialInput{ClaimID: "CLM-1"})
	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.Equal(t, "AUTH-42", result.AuthNumber)
}

func TestFindDuplicate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/duplicates/search", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"found_duplicate":    true,
			"duplicate_claim_id": "ORIG-9",
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	require.NoError(t, err)

	result, err := client.FindDuplicate(context.Background(), model.DenialInput{ClaimID: "CLM-1"})
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "ORIG-9", result.DuplicateClaimID)
}

func TestCheckPolicy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/policy/check", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"supported": false,
			"strength":  "weak",
			"gaps":      []string{"diagnosis not covered"},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	require.NoError(t, err)

	result, err := client.CheckPolicy(context.Background(), []string{"99213"}, []string{"E11.9"}, nil)
	require.NoError(t, err)
	assert.False(t, result.Supported)
	assert.Equal(t, "weak", result.Strength)
	assert.Equal(t, []string{"diagnosis not covered"}, result.Gaps)
}

func TestGatewayErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	require.NoError(t, err)

	_, err = client.VerifyEligibility(context.Background(), "PAT-1", time.Now())
	assert.ErrorContains(t, err, "status 502")
}

func TestMockGatewayDefaults(t *testing.T) {
	gateway := NewMockGateway()
	ctx := context.Background()

	elig, err := gateway.VerifyEligibility(ctx, "PAT-1", time.Now())
	require.NoError(t, err)
	assert.True(t, elig.Eligible)

	auth, err := gateway.RequestAuthorization(ctx, model.DenialInput{ClaimID: "CLM-1"})
	require.NoError(t, err)
	assert.Equal(t, "AUTH-CLM-1", auth.AuthNumber)

	dup, err := gateway.FindDuplicate(ctx, model.DenialInput{ClaimID: "CLM-1"})
	require.NoError(t, err)
	assert.Equal(t, "ORIG-CLM-1", dup.DuplicateClaimID)

	assert.Equal(t, 1, gateway.EligibilityCalls)
	assert.Equal(t, 1, gateway.AuthorizationCalls)
	assert.Equal(t, 1, gateway.DuplicateCalls)

	gateway.Reset()
	assert.Zero(t, gateway.EligibilityCalls)
}
