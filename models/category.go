package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

type GarmentCategory string

const (
	CategoryTops        GarmentCategory = "tops"
	CategoryBottoms     GarmentCategory = "bottoms"
	CategoryDresses     GarmentCategory = "dresses"
	CategoryShoes       GarmentCategory = "shoes"
	CategoryOuterwear   GarmentCategory = "outerwear"
	CategoryAccessories GarmentCategory = "accessories"
	CategoryActivewear  GarmentCategory = "activewear"
)

func (c *GarmentCategory) Scan(value interface{}) error {
	*c = GarmentCategory(value.(string))
	return nil
}

func (c GarmentCategory) Value() (string, error) {
	return string(c), nil
}

func ValidateCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	matched, _ := regexp.MatchString("^tops|bottoms|dresses|shoes|outerwear|accessories|activewear$", value)
	return matched
}

func ValidateCategoryRaw(value string) bool {
	matched, _ := regexp.MatchString("^tops|bottoms|dresses|shoes|outerwear|accessories|activewear$", value)
	return matched
}
