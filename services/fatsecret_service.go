package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"nutrilog/models"
)

// FatSecretService talks to the structured-serving nutrition provider:
// barcode resolution plus per-food detail lookups. Payload parsing lives in
// the normalizer; this client only moves bytes.
type FatSecretService struct {
	apiBase string
	apiKey  string
	client  *http.Client
}

func NewFatSecretService() *FatSecretService {
	base := os.Getenv("FATSECRET_API_BASE")
	if base == "" {
		base = "https://platform.fatsecret.com/rest/server.api"
	}
	return &FatSecretService{
		apiBase: base,
		apiKey:  os.Getenv("FATSECRET_API_KEY"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *FatSecretService) get(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider error %d: %s", ErrRemoteUnavailable, resp.StatusCode, string(body))
	}
	return body, nil
}

// FindBarcode resolves a scanned barcode to the provider's food id.
func (s *FatSecretService) FindBarcode(ctx context.Context, barcode string) (string, error) {
	body, err := s.get(ctx, url.Values{
		"method":  {"food.find_id_for_barcode"},
		"barcode": {barcode},
	})
	if err != nil {
		return "", err
	}
	id, err := decodeBarcodeID(body)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetFood fetches the detail payload for a food id and normalizes it to a
// canonical record.
func (s *FatSecretService) GetFood(ctx context.Context, foodID string) (models.FoodRecord, error) {
	body, err := s.get(ctx, url.Values{
		"method":  {"food.get.v4"},
		"food_id": {foodID},
	})
	if err != nil {
		return models.FoodRecord{}, err
	}
	return NormalizeStructuredFood(body)
}

// SearchFoods runs a free-text catalog search and returns normalized
// records for each hit that has usable servings. Per-hit failures are
// skipped: catalog lookups degrade, they don't fail.
func (s *FatSecretService) SearchFoods(ctx context.Context, query string) ([]models.FoodRecord, error) {
	body, err := s.get(ctx, url.Values{
		"method":            {"foods.search"},
		"search_expression": {query},
	})
	if err != nil {
		return nil, err
	}
	ids, err := decodeSearchIDs(body)
	if err != nil {
		return nil, err
	}
	records := make([]models.FoodRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := s.GetFood(ctx, id)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
