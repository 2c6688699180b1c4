package controllers

import (
	"net/http"
	"time"

	"aynamodaapi/models"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type WardrobeController struct {
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.POST("/items", controller.CreateItem)
	g.GET("/items", controller.ListItems)
	g.PUT("/items/:itemId", controller.UpdateItem)
	g.POST("/items/:itemId/wear", controller.RecordWear)
}

func itemToOut(item models.WardrobeItem) models.WardrobeItemOut {
	return models.WardrobeItemOut{
		ID:                  item.ID,
		Name:                item.Name,
		Description:         item.Description,
		Category:            string(item.Category),
		Colors:              item.Colors,
		Tags:                item.Tags,
		TotalWears:          item.TotalWears,
		AverageRating:       item.AverageRating,
		LastWorn:            item.LastWorn,
		ComplimentsReceived: item.ComplimentsReceived,
		CreatedAt:           item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:           item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (controller *WardrobeController) CreateItem(c echo.Context) error {
	var req models.CreateWardrobeItemIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	item := models.WardrobeItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    models.GarmentCategory(req.Category),
		Colors:      req.Colors,
		Tags:        req.Tags,
		FitNotes:    req.FitNotes,
		OwnerID:     user.ID,
	}
	if err := db.Create(&item).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save wardrobe item"})
	}

	return c.JSON(http.StatusCreated, itemToOut(item))
}

func (controller *WardrobeController) ListItems(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var items []models.WardrobeItem
	if err := db.Where("owner_id = ?", user.ID).Order("id").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	response := models.WardrobeListOut{
		Tops:        []models.WardrobeItemOut{},
		Bottoms:     []models.WardrobeItemOut{},
		Dresses:     []models.WardrobeItemOut{},
		Shoes:       []models.WardrobeItemOut{},
		Outerwear:   []models.WardrobeItemOut{},
		Accessories: []models.WardrobeItemOut{},
		Activewear:  []models.WardrobeItemOut{},
	}
	for _, item := range items {
		out := itemToOut(item)
		switch item.Category {
		case models.CategoryTops:
			response.Tops = append(response.Tops, out)
		case models.CategoryBottoms:
			response.Bottoms = append(response.Bottoms, out)
		case models.CategoryDresses:
			response.Dresses = append(response.Dresses, out)
		case models.CategoryShoes:
			response.Shoes = append(response.Shoes, out)
		case models.CategoryOuterwear:
			response.Outerwear = append(response.Outerwear, out)
		case models.CategoryAccessories:
			response.Accessories = append(response.Accessories, out)
		case models.CategoryActivewear:
			response.Activewear = append(response.Activewear, out)
		}
	}
	return c.JSON(http.StatusOK, response)
}

func (controller *WardrobeController) UpdateItem(c echo.Context) error {
	var req models.UpdateWardrobeItemIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var item models.WardrobeItem
	r := db.Where("id = ? AND owner_id = ?", c.Param("itemId"), user.ID).Limit(1).Find(&item)
	if r.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe item"})
	}
	if r.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Wardrobe item not found"})
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Colors != nil {
		item.Colors = req.Colors
	}
	if req.Tags != nil {
		item.Tags = req.Tags
	}
	if req.FitNotes != nil {
		item.FitNotes = req.FitNotes
	}
	if err := db.Save(&item).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update wardrobe item"})
	}
	return c.JSON(http.StatusOK, itemToOut(item))
}

// RecordWear is the usage-tracking event: bumps wear count, shifts the
// average rating when one is supplied and stamps last worn.
func (controller *WardrobeController) RecordWear(c echo.Context) error {
	var req models.RecordWearIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var item models.WardrobeItem
	r := db.Where("id = ? AND owner_id = ?", c.Param("itemId"), user.ID).Limit(1).Find(&item)
	if r.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe item"})
	}
	if r.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Wardrobe item not found"})
	}

	if req.Rating != nil {
		// running mean over all wears
		total := item.AverageRating*float64(item.TotalWears) + *req.Rating
		item.AverageRating = total / float64(item.TotalWears+1)
	}
	item.TotalWears++
	item.ComplimentsReceived += req.Compliments
	now := time.Now().UTC()
	item.LastWorn = &now

	if err := db.Save(&item).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record wear"})
	}
	return c.JSON(http.StatusOK, itemToOut(item))
}
