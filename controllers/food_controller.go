package controllers

import (
	"net/http"

	"nutrilog/models"
	"nutrilog/services"

	"github.com/gin-gonic/gin"
)

// Catalog endpoints. Search and lookup failures degrade to empty results:
// nothing here commits a log entry, so the UI just shows "no matches".

// GET /food/search?q=apple
func SearchFoods(c *gin.Context) {
	fs := services.NewFatSecretService()
	out, err := fs.SearchFoods(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusOK, []models.FoodRecord{})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /food/barcode/:code
func LookupBarcode(c *gin.Context) {
	fs := services.NewFatSecretService()
	ctx := c.Request.Context()

	foodID, err := fs.FindBarcode(ctx, c.Param("code"))
	if err == nil {
		rec, err := fs.GetFood(ctx, foodID)
		if err == nil {
			c.JSON(http.StatusOK, rec)
			return
		}
	}

	// Fall back to the generic product database before giving up.
	off := services.NewOpenFoodFactsService()
	rec, err := off.GetProduct(ctx, c.Param("code"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "no product found for this barcode"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GET /food/product/:code
func GetProduct(c *gin.Context) {
	off := services.NewOpenFoodFactsService()
	rec, err := off.GetProduct(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "no product found for this barcode"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /food/recognize  { "image_base64": "data:image/jpeg;base64,..." }
func RecognizeFood(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ctx := c.Request.Context()
	rek, err := services.NewRekognitionService(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	labels, err := rek.RecognizeMeal(ctx, req.ImageBase64)
	if err != nil || len(labels) == 0 {
		c.JSON(http.StatusOK, []models.FoodRecord{})
		return
	}

	fs := services.NewFatSecretService()
	out, err := fs.SearchFoods(ctx, labels[0])
	if err != nil {
		c.JSON(http.StatusOK, []models.FoodRecord{})
		return
	}
	c.JSON(http.StatusOK, out)
}
