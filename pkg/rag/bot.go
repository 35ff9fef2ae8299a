package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/logger"
)

// FailureMessage is returned whenever the pipeline cannot produce an answer.
const FailureMessage = "I'm sorry, I encountered an error while processing your request. Please try again."

const (
	defaultLimit = 50
	itemsLimit   = 200
)

// Bot answers free-form questions about restaurants and menus.
type Bot struct {
	LLM     Completer
	Catalog Catalog
	History HistoryStore
	Log     *logger.Logger
}

func NewBot(llm Completer, catalog Catalog, history HistoryStore, log *logger.Logger) *Bot {
	if history == nil {
		history = NewMemoryHistory(0)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Bot{LLM: llm, Catalog: catalog, History: history, Log: log}
}

// Ask runs classify, retrieve and answer. It always returns prose.
func (b *Bot) Ask(ctx context.Context, requestID, query, city string) string {
	if city = strings.TrimSpace(city); city != "" {
		query = fmt.Sprintf("%s in %s", query, city)
	}

	cls, err := Classify(ctx, b.LLM, query)
	if err != nil {
		b.Log.Warn("rag_classify", requestID, "classification fell back", slog.String("reason", err.Error()))
	}

	answer := FailureMessage
	content, err := b.Retrieve(ctx, cls)
	if err == nil {
		answer, err = b.answer(ctx, query, content)
	}
	if err != nil {
		b.Log.Error("rag_answer", requestID, "failed to answer", err)
		answer = FailureMessage
	}

	t := Transcript{Query: query, Classification: cls, Answer: answer, CreatedAt: time.Now()}
	if herr := b.History.Append(ctx, t); herr != nil {
		b.Log.Error("rag_history", requestID, "failed to store transcript", herr)
	}
	return answer
}

// Retrieve builds the JSON-ready content for a classification.
func (b *Bot) Retrieve(ctx context.Context, cls Classification) (any, error) {
	switch {
	case cls.QueryType == TypeRestaurantItems && cls.RestaurantName != "":
		return b.restaurantItems(ctx, cls)
	case cls.QueryType == TypeRestaurantSuggestion && cls.ItemName != "":
		return b.suggestByItem(ctx, cls)
	case cls.QueryType == TypeRestaurantSuggestion && cls.CategoryName != "":
		return b.suggestByCategory(ctx, cls)
	case cls.QueryType == TypeReviewSearch:
		return b.reviews(ctx, cls)
	default:
		return b.generic(ctx, cls)
	}
}

type RestaurantItems struct {
	Restaurant entity.Restaurant `json:"restaurant"`
	Items      []entity.Item     `json:"items"`
}

func (b *Bot) restaurantItems(ctx context.Context, cls Classification) (any, error) {
	rests, err := b.Catalog.RestaurantsByName(ctx, cls.RestaurantName, cls.CityName, 10)
	if err != nil {
		return nil, err
	}
	out := map[string]any{
		"queryType":        TypeRestaurantItems,
		"searchRestaurant": cls.RestaurantName,
		"searchCity":       cls.CityName,
	}
	if len(rests) == 0 {
		out["restaurantData"] = []RestaurantItems{}
		out["totalItems"] = 0
		out["message"] = fmt.Sprintf("Sorry, I couldn't find any restaurant named %q%s.", cls.RestaurantName, inCity(cls.CityName))
		return out, nil
	}

	items, err := b.Catalog.ItemsOf(ctx, restaurantIDs(rests), itemsLimit)
	if err != nil {
		return nil, err
	}
	grouped := groupItems(rests, items, false)
	out["restaurantData"] = grouped
	out["totalItems"] = len(items)
	out["message"] = fmt.Sprintf("Found %d items from %d restaurant(s) named %q", len(items), len(rests), cls.RestaurantName)
	return out, nil
}

func (b *Bot) suggestByItem(ctx context.Context, cls Classification) (any, error) {
	items, err := b.Catalog.AvailableItemsByName(ctx, cls.ItemName, 100)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find any available %q in our system.", cls.ItemName), nil
	}

	ids := uniqueRestaurantIDs(items)
	if cls.CityName != "" {
		inCityIDs, err := b.Catalog.RestaurantIDsInCity(ctx, cls.CityName)
		if err != nil {
			return nil, err
		}
		ids = intersect(ids, inCityIDs)
	}
	rests, err := b.Catalog.RestaurantsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	grouped := groupItems(rests, items, true)
	if len(grouped) == 0 {
		return fmt.Sprintf("Found %q in our system, but no restaurants%s currently serve it.", cls.ItemName, inCity(cls.CityName)), nil
	}
	return map[string]any{
		"queryType":   TypeRestaurantSuggestion,
		"searchTerm":  cls.ItemName,
		"searchCity":  cls.CityName,
		"restaurants": grouped,
		"totalFound":  len(grouped),
		"message":     fmt.Sprintf("Found %d restaurants serving %q%s", len(grouped), cls.ItemName, inCity(cls.CityName)),
	}, nil
}

func (b *Bot) suggestByCategory(ctx context.Context, cls Classification) (any, error) {
	var scope []uint
	if cls.CityName != "" {
		ids, err := b.Catalog.RestaurantIDsInCity(ctx, cls.CityName)
		if err != nil {
			return nil, err
		}
		scope = ids
		if scope == nil {
			scope = []uint{}
		}
	}
	cats, err := b.Catalog.CategoriesByName(ctx, cls.CategoryName, scope)
	if err != nil {
		return nil, err
	}
	seen := map[uint]bool{}
	var ids []uint
	for _, c := range cats {
		if !seen[c.RestaurantID] {
			seen[c.RestaurantID] = true
			ids = append(ids, c.RestaurantID)
		}
	}
	if len(ids) == 0 {
		return fmt.Sprintf("Sorry, no restaurants found for category %q%s.", cls.CategoryName, inCity(cls.CityName)), nil
	}
	rests, err := b.Catalog.RestaurantsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"queryType":      TypeRestaurantSuggestion,
		"searchCategory": cls.CategoryName,
		"searchCity":     cls.CityName,
		"restaurants":    rests,
		"totalFound":     len(rests),
		"message":        fmt.Sprintf("Found %d restaurants offering the %q category%s.", len(rests), cls.CategoryName, inCity(cls.CityName)),
	}, nil
}

type ReviewText struct {
	Text   string `json:"text"`
	Rating string `json:"rating"`
}

type RestaurantReviews struct {
	RestaurantNumber int          `json:"restaurantNumber"`
	RestaurantName   string       `json:"restaurantName"`
	City             string       `json:"city"`
	Reviews          []ReviewText `json:"reviews"`
}

func (b *Bot) reviews(ctx context.Context, cls Classification) (any, error) {
	reviews, err := b.Catalog.Reviews(ctx, defaultLimit)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return map[string]any{
			"queryType": TypeReviewSearch,
			"results":   []RestaurantReviews{},
			"message":   "Sorry, I couldn't find any reviews at the moment.",
		}, nil
	}
	results := GroupReviews(reviews)
	return map[string]any{
		"queryType":        TypeReviewSearch,
		"searchCity":       cls.CityName,
		"totalRestaurants": len(results),
		"results":          results,
		"message":          fmt.Sprintf("Found reviews for %d restaurant(s)", len(results)),
	}, nil
}

// GroupReviews groups reviews per restaurant in first-seen order.
func GroupReviews(reviews []entity.Review) []RestaurantReviews {
	index := map[uint]int{}
	var out []RestaurantReviews
	for _, rv := range reviews {
		i, ok := index[rv.RestaurantID]
		if !ok {
			name := fmt.Sprintf("(Unknown ID: %d)", rv.RestaurantID)
			city := "Unknown"
			if rv.Restaurant != nil {
				name, city = rv.Restaurant.Name, rv.Restaurant.City
			}
			out = append(out, RestaurantReviews{RestaurantNumber: len(out) + 1, RestaurantName: name, City: city})
			i = len(out) - 1
			index[rv.RestaurantID] = i
		}
		rating := "n/a"
		if rv.RestaurantRating != nil {
			rating = fmt.Sprintf("%d/5", *rv.RestaurantRating)
		}
		out[i].Reviews = append(out[i].Reviews, ReviewText{Text: rv.RestaurantReviewText, Rating: rating})
	}
	return out
}

type itemWithRestaurant struct {
	entity.Item
	RestaurantDetails *entity.Restaurant `json:"restaurantDetails"`
}

func (b *Bot) generic(ctx context.Context, cls Classification) (any, error) {
	var results any
	total := 0
	switch cls.PrimaryCollection {
	case CollectionRestaurants:
		rests, err := b.Catalog.RestaurantsByName(ctx, cls.RestaurantName, cls.CityName, defaultLimit)
		if err != nil {
			return nil, err
		}
		results, total = rests, len(rests)
	case CollectionCategories:
		cats, err := b.Catalog.CategoriesByName(ctx, cls.CategoryName, nil)
		if err != nil {
			return nil, err
		}
		results, total = cats, len(cats)
	case CollectionReviews:
		reviews, err := b.Catalog.Reviews(ctx, defaultLimit)
		if err != nil {
			return nil, err
		}
		results, total = reviews, len(reviews)
	case CollectionOrders:
		// order data is private; point the customer to their history instead
		return map[string]any{
			"queryType":  cls.QueryType,
			"collection": CollectionOrders,
			"results":    []any{},
			"totalFound": 0,
			"message":    "Order details are only available to signed-in customers from their order history.",
		}, nil
	default:
		items, err := b.Catalog.AvailableItemsByName(ctx, cls.ItemName, defaultLimit)
		if err != nil {
			return nil, err
		}
		rests, err := b.Catalog.RestaurantsByIDs(ctx, uniqueRestaurantIDs(items))
		if err != nil {
			return nil, err
		}
		byID := make(map[uint]*entity.Restaurant, len(rests))
		for i := range rests {
			byID[rests[i].ID] = &rests[i]
		}
		enriched := make([]itemWithRestaurant, 0, len(items))
		for _, it := range items {
			enriched = append(enriched, itemWithRestaurant{Item: it, RestaurantDetails: byID[it.RestaurantID]})
		}
		results, total = enriched, len(enriched)
	}
	return map[string]any{
		"queryType":        cls.QueryType,
		"collection":       cls.PrimaryCollection,
		"searchCity":       cls.CityName,
		"searchItem":       cls.ItemName,
		"searchRestaurant": cls.RestaurantName,
		"results":          results,
		"totalFound":       total,
	}, nil
}

const answerPrompt = `You are a friendly customer support agent for a food delivery service. Answer the customer's query based on the provided data.

### Customer Query:
%s

### Available Data:
%s

### Instructions:
- Be friendly, helpful and concise
- When data is available, give specific restaurant names, item names, prices (PKR), ratings, availability, addresses and cities
- When showing items, always include the restaurant details from the restaurantDetails field if present
- Group items by restaurant when suggesting restaurants for an item
- For review searches, list each restaurant with its reviews and ratings
- If the data is empty, say "I'm sorry, I couldn't find information about that in our system."

Response:
`

func (b *Bot) answer(ctx context.Context, query string, content any) (string, error) {
	var data string
	if s, ok := content.(string); ok {
		data = s
	} else {
		raw, err := json.MarshalIndent(content, "", "  ")
		if err != nil {
			return "", err
		}
		data = string(raw)
	}
	return b.LLM.Complete(ctx, fmt.Sprintf(answerPrompt, query, data))
}

// groupItems pairs restaurants with their items; dropEmpty skips restaurants without matches.
func groupItems(rests []entity.Restaurant, items []entity.Item, dropEmpty bool) []RestaurantItems {
	byRest := map[uint][]entity.Item{}
	for _, it := range items {
		byRest[it.RestaurantID] = append(byRest[it.RestaurantID], it)
	}
	out := make([]RestaurantItems, 0, len(rests))
	for _, r := range rests {
		its := byRest[r.ID]
		if dropEmpty && len(its) == 0 {
			continue
		}
		if its == nil {
			its = []entity.Item{}
		}
		out = append(out, RestaurantItems{Restaurant: r, Items: its})
	}
	return out
}

func restaurantIDs(rests []entity.Restaurant) []uint {
	ids := make([]uint, 0, len(rests))
	for _, r := range rests {
		ids = append(ids, r.ID)
	}
	return ids
}

func uniqueRestaurantIDs(items []entity.Item) []uint {
	seen := map[uint]bool{}
	var ids []uint
	for _, it := range items {
		if !seen[it.RestaurantID] {
			seen[it.RestaurantID] = true
			ids = append(ids, it.RestaurantID)
		}
	}
	return ids
}

func intersect(a, b []uint) []uint {
	in := make(map[uint]bool, len(b))
	for _, v := range b {
		in[v] = true
	}
	var out []uint
	for _, v := range a {
		if in[v] {
			out = append(out, v)
		}
	}
	return out
}

func inCity(city string) string {
	if city == "" {
		return ""
	}
	return " in " + city
}
