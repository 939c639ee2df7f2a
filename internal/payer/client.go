// Package payer provides a client for the payer-integration gateway that
// backs the remediation handlers' external checks.
package payer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/service"
)

// Client calls the payer-integration gateway over HTTP. It implements every
// remediation collaborator interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a payer gateway client.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("payer gateway URL is required")
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Gateway request/response types.
type eligibilityRequest struct {
	PatientID   string `json:"patient_id"`
	ServiceDate string `json:"service_date"`
}

type eligibilityResponse struct {
	Eligible        bool              `json:"eligible"`
	CoverageDetails map[string]string `json:"coverage_details"`
}

type authorizationResponse struct {
	Approved   bool   `json:"approved"`
	AuthNumber string `json:"auth_number"`
}

type duplicateResponse struct {
	FoundDuplicate   bool   `json:"found_duplicate"`
	DuplicateClaimID string `json:"duplicate_claim_id"`
}

type documentationRequest struct {
	PatientID    string   `json:"patient_id"`
	ServiceDate  string   `json:"service_date"`
	Requirements []string `json:"requirements"`
}

type documentationResponse struct {
	Complete  bool     `json:"complete"`
	Documents []string `json:"documents"`
}

type policyRequest struct {
	ProcedureCodes []string          `json:"procedure_codes"`
	DiagnosisCodes []string          `json:"diagnosis_codes"`
	ClinicalData   map[string]string `json:"clinical_data,omitempty"`
}

type policyResponse struct {
	Supported bool     `json:"supported"`
	Strength  string   `json:"strength"`
	Gaps      []string `json:"gaps"`
}

// VerifyEligibility implements service.EligibilityVerifier.
func (c *Client) VerifyEligibility(ctx context.Context, patientID string, serviceDate time.Time) (*service.EligibilityResult, error) {
	var resp eligibilityResponse
	err := c.post(ctx, "/v1/eligibility", eligibilityRequest{
		PatientID:   patientID,
		ServiceDate: serviceDate.Format("2006-01-02"),
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &service.EligibilityResult{
		Eligible:        resp.Eligible,
		CoverageDetails: resp.CoverageDetails,
	}, nil
}

// RequestAuthorization implements service.AuthorizationRequester.
func (c *Client) RequestAuthorization(ctx context.Context, denial model.DenialInput) (*service.AuthorizationResult, error) {
	var resp authorizationResponse
	if err := c.post(ctx, "/v1/authorizations", denial, &resp); err != nil {
		return nil, err
	}

	return &service.AuthorizationResult{
		Approved:   resp.Approved,
		AuthNumber: resp.AuthNumber,
	}, nil
}

// FindDuplicate implements service.DuplicateSearcher.
func (c *Client) FindDuplicate(ctx context.Context, denial model.DenialInput) (*service.DuplicateResult, error) {
	var resp duplicateResponse
	if err := c.post(ctx, "/v1/duplicates/search", denial, &resp); err != nil {
		return nil, err
	}

	return &service.DuplicateResult{
		Found:            resp.FoundDuplicate,
		DuplicateClaimID: resp.DuplicateClaimID,
	}, nil
}

// GatherDocumentation implements service.DocumentationProvider.
func (c *Client) GatherDocumentation(ctx context.Context, patientID string, serviceDate time.Time, requirements []string) (*service.DocumentationResult, error) {
	var resp documentationResponse
	err := c.post(ctx, "/v1/documentation", documentationRequest{
		PatientID:    patientID,
		ServiceDate:  serviceDate.Format("2006-01-02"),
		Requirements: requirements,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &service.DocumentationResult{
		Complete:  resp.Complete,
		Documents: resp.Documents,
	}, nil
}

// CheckPolicy implements service.MedicalPolicyChecker.
func (c *Client) CheckPolicy(ctx context.Context, procedureCodes, diagnosisCodes []string, clinical map[string]string) (*service.PolicyResult, error) {
	var resp policyResponse
	err := c.post(ctx, "/v1/policy/check", policyRequest{
		ProcedureCodes: procedureCodes,
		DiagnosisCodes: diagnosisCodes,
		ClinicalData:   clinical,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &service.PolicyResult{
		Supported: resp.Supported,
		Strength:  resp.Strength,
		Gaps:      resp.Gaps,
	}, nil
}

// post sends a JSON request to the gateway and decodes the JSON response.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payer gateway request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("payer gateway error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// Interface checks.
var (
	_ service.EligibilityVerifier    = (*Client)(nil)
	_ service.AuthorizationRequester = (*Client)(nil)
	_ service.DuplicateSearcher      = (*Client)(nil)
	_ service.DocumentationProvider  = (*Client)(nil)
	_ service.MedicalPolicyChecker   = (*Client)(nil)
)
