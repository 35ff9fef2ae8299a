package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"
)

const (
	TypeRestaurantSuggestion = "restaurant_suggestion"
	TypeGeneralSearch        = "general_search"
	TypeOrderInquiry         = "order_inquiry"
	TypeReviewSearch         = "review_search"
	TypeRestaurantInfo       = "restaurant_info"
	TypeRestaurantItems      = "restaurant_items"

	CollectionItems       = "items"
	CollectionRestaurants = "restaurants"
	CollectionCategories  = "categories"
	CollectionReviews     = "reviews"
	CollectionOrders      = "orders"
)

// Classification is what the model extracts from a question.
type Classification struct {
	QueryType         string `json:"queryType" bson:"queryType"`
	ItemName          string `json:"itemName" bson:"itemName"`
	RestaurantName    string `json:"restaurantName" bson:"restaurantName"`
	CategoryName      string `json:"categoryName" bson:"categoryName"`
	CityName          string `json:"cityName" bson:"cityName"`
	PrimaryCollection string `json:"primaryCollection" bson:"primaryCollection"`
}

const classificationPrompt = `You are an expert at classifying user queries for a restaurant database.
Analyze the user query and extract:
1. Query type: "restaurant_suggestion", "general_search", "order_inquiry", "review_search", "restaurant_info", or "restaurant_items"
2. Item name (if mentioned)
3. Restaurant name (if mentioned)
4. Category name (if mentioned, like BBQ, Chinese, Fast Food, etc.)
5. City name (if mentioned)
6. Primary collection to search: "items", "restaurants", "categories", "reviews" or "orders"

Guidelines:
- "restaurant_suggestion" when the user asks for restaurants that serve specific items or belong to a specific category
- "restaurant_items" when the user asks for items or the menu of a specific restaurant
- "restaurant_info" when the user asks about restaurant details
- "general_search" for searching items, prices and availability across all restaurants

Answer with JSON only:
{
  "queryType": "restaurant_items",
  "itemName": null,
  "restaurantName": null,
  "categoryName": null,
  "cityName": null,
  "primaryCollection": "items"
}

User Query: %s
Classification:
`

// Classify asks the model to label the query. Any failure yields the general-search fallback.
func Classify(ctx context.Context, llm Completer, query string) (Classification, error) {
	out, err := llm.Complete(ctx, fmt.Sprintf(classificationPrompt, query))
	if err != nil {
		return fallbackClassification(query), err
	}
	return ParseClassification(out, query), nil
}

// ParseClassification decodes the model output, tolerating markdown fences and nulls.
func ParseClassification(out, query string) Classification {
	var raw struct {
		QueryType         *string `json:"queryType"`
		ItemName          *string `json:"itemName"`
		RestaurantName    *string `json:"restaurantName"`
		CategoryName      *string `json:"categoryName"`
		CityName          *string `json:"cityName"`
		PrimaryCollection *string `json:"primaryCollection"`
	}
	if err := json.Unmarshal([]byte(utils.StripCodeFence(out)), &raw); err != nil {
		return fallbackClassification(query)
	}
	c := Classification{
		QueryType:         clean(raw.QueryType),
		ItemName:          clean(raw.ItemName),
		RestaurantName:    clean(raw.RestaurantName),
		CategoryName:      clean(raw.CategoryName),
		CityName:          clean(raw.CityName),
		PrimaryCollection: clean(raw.PrimaryCollection),
	}
	if c.QueryType == "" {
		c.QueryType = TypeGeneralSearch
	}
	if c.PrimaryCollection == "" {
		c.PrimaryCollection = CollectionItems
	}
	return c
}

func fallbackClassification(query string) Classification {
	return Classification{
		QueryType:         TypeGeneralSearch,
		RestaurantName:    query,
		PrimaryCollection: CollectionItems,
	}
}

// clean drops the "null" strings models like to emit.
func clean(s *string) string {
	if s == nil {
		return ""
	}
	v := strings.TrimSpace(*s)
	if strings.EqualFold(v, "null") || strings.EqualFold(v, "none") {
		return ""
	}
	return v
}
