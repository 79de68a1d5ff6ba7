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

// OpenFoodFactsService fetches generic products from the flat per-100g
// database. No credentials; the API only asks for a descriptive user agent.
type OpenFoodFactsService struct {
	apiBase   string
	userAgent string
	client    *http.Client
}

func NewOpenFoodFactsService() *OpenFoodFactsService {
	base := os.Getenv("OFF_API_BASE")
	if base == "" {
		base = "https://world.openfoodfacts.org"
	}
	return &OpenFoodFactsService{
		apiBase:   base,
		userAgent: "nutrilog/1.0",
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GetProduct looks a barcode up and normalizes the product to a canonical
// per-100g record.
func (s *OpenFoodFactsService) GetProduct(ctx context.Context, barcode string) (models.FoodRecord, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s.json", s.apiBase, url.PathEscape(barcode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.FoodRecord{}, fmt.Errorf("failed to create product request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return models.FoodRecord{}, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.FoodRecord{}, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.FoodRecord{}, fmt.Errorf("%w: product API error %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	return NormalizeFlatProduct(body)
}
