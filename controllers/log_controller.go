package controllers

import (
	"net/http"
	"time"

	"nutrilog/models"
	"nutrilog/services"

	"github.com/gin-gonic/gin"
)

// LogController exposes the daily log store to the UI layers. Unlike the
// catalog endpoints these are commit paths: failures come back as explicit,
// human-readable notices instead of degrading silently.
type LogController struct {
	logs *services.DailyLogService
}

func NewLogController(logs *services.DailyLogService) *LogController {
	return &LogController{logs: logs}
}

func parseDateParam(c *gin.Context) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be yyyy-MM-dd"})
		return time.Time{}, false
	}
	return date, true
}

// GET /logs/:date
func (lc *LogController) GetLog(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	dl, err := lc.logs.FetchOrCreate(c.Request.Context(), c.GetUint("userID"), date)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "could not load your log, please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": dl, "totals": dl.Totals()})
}

// POST /logs/:date/foods  (body: a canonical food record)
func (lc *LogController) AddFood(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	var rec models.FoodRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dl, err := lc.logs.AddFood(c.Request.Context(), c.GetUint("userID"), rec, date)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "your food could not be saved, please try again"})
		return
	}
	c.JSON(http.StatusCreated, dl)
}

// POST /logs/:date/meals  { "name": "...", "foods": [...] }
func (lc *LogController) AddMeal(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	var body struct {
		Name  string              `json:"name" binding:"required"`
		Foods []models.FoodRecord `json:"foods"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dl, err := lc.logs.AddMeal(c.Request.Context(), c.GetUint("userID"), body.Name, body.Foods, date)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "your meal could not be saved, please try again"})
		return
	}
	c.JSON(http.StatusCreated, dl)
}

// DELETE /logs/:date/foods/:foodId
func (lc *LogController) DeleteFood(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	dl, err := lc.logs.DeleteFood(c.Request.Context(), c.GetUint("userID"), c.Param("foodId"), date)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "the entry could not be removed, please try again"})
		return
	}
	c.JSON(http.StatusOK, dl)
}

// POST /logs/:date/water  { "amount_ounces": 8, "goal_ounces": 64 }
func (lc *LogController) AddWater(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	var body struct {
		AmountOunces float64 `json:"amount_ounces" binding:"required"`
		GoalOunces   float64 `json:"goal_ounces"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dl, err := lc.logs.AddWater(c.Request.Context(), c.GetUint("userID"), date, body.AmountOunces, body.GoalOunces)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "your water intake could not be saved, please try again"})
		return
	}
	c.JSON(http.StatusOK, dl)
}

// PUT /logs/:date/calorie-override  { "calories": 1800 }
func (lc *LogController) SetCalorieOverride(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	var body struct {
		Calories float64 `json:"calories" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dl, err := lc.logs.SetCalorieOverride(c.Request.Context(), c.GetUint("userID"), date, body.Calories)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "the override could not be saved, please try again"})
		return
	}
	c.JSON(http.StatusOK, dl)
}

// GET /food/recent returns quick-add suggestions; errors already degraded
// to an empty list inside the service.
func (lc *LogController) ListRecentFoods(c *gin.Context) {
	ids := lc.logs.ListRecentFoodIDs(c.Request.Context(), c.GetUint("userID"))
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"food_ids": ids})
}
