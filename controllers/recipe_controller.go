package controllers

import (
	"errors"
	"net/http"

	"nutrilog/services"

	"github.com/gin-gonic/gin"
)

// RecipeController runs the AI recipe flow: generate free text, show the
// user a preview, then commit the parsed record to the daily log. The
// commit path is strict about nutrition completeness; the preview is not.
type RecipeController struct {
	ai   *services.RecipeAIService
	logs *services.DailyLogService
}

func NewRecipeController(ai *services.RecipeAIService, logs *services.DailyLogService) *RecipeController {
	return &RecipeController{ai: ai, logs: logs}
}

// POST /recipes/generate  { "prompt": "high protein breakfast" }
func (rc *RecipeController) Generate(c *gin.Context) {
	var body struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := rc.ai.GenerateRecipe(c.Request.Context(), body.Prompt)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "the recipe assistant is unavailable right now"})
		return
	}

	resp := gin.H{"text": text}
	if rec, err := services.NormalizeRecipeText(text); err == nil {
		resp["preview"] = rec
	}
	c.JSON(http.StatusOK, resp)
}

// POST /logs/:date/recipe  { "text": "<the generated reply>" }
func (rc *RecipeController) LogRecipe(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	var body struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := services.NormalizeRecipeText(body.Text)
	if err != nil {
		if errors.Is(err, services.ErrIncompleteNutrition) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "this recipe is missing nutrition information and cannot be logged",
			})
			return
		}
		c.JSON(statusForError(err), gin.H{"error": "this recipe could not be read"})
		return
	}

	dl, err := rc.logs.AddFood(c.Request.Context(), c.GetUint("userID"), rec, date)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "your recipe could not be saved, please try again"})
		return
	}
	c.JSON(http.StatusCreated, dl)
}
