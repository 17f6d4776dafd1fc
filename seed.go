package palate

import "time"

// SeedSampleData loads a small deterministic demo model: one profile with
// established tastes and a catalog spanning cuisines, price points, and
// context keywords. Useful for demos and first-run exploration.
func SeedSampleData(e *Engine) error {
	profile := UserProfile{
		UserID:              "user_123",
		Preferences:         []string{"italian", "spicy", "vegetarian"},
		OrderHistory:        []string{"pizza_001", "pasta_002", "salad_003"},
		DietaryRestrictions: []string{},
		PriceSensitivity:    0.7,
		AvgOrderValue:       25.50,
		LastUpdated:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	e.profiles.Put(profile)
	if e.store != nil {
		if err := e.store.UpsertProfile(&profile); err != nil {
			return err
		}
	}

	items := []ItemFeatures{
		{
			ItemID:       "pizza_001",
			Name:         "Margherita Pizza",
			Cuisine:      "italian",
			SpiceLevel:   1,
			IsVegetarian: true,
			Price:        15.99,
			Rating:       4.5,
			Tags:         []string{"pizza", "cheese", "vegetarian"},
		},
		{
			ItemID:       "pasta_002",
			Name:         "Penne Arrabbiata",
			Cuisine:      "italian",
			SpiceLevel:   3,
			IsVegetarian: true,
			Price:        14.50,
			Rating:       4.3,
			Tags:         []string{"pasta", "spicy", "vegetarian"},
		},
		{
			ItemID:       "salad_003",
			Name:         "Fresh Garden Salad",
			Cuisine:      "mediterranean",
			SpiceLevel:   0,
			IsVegetarian: true,
			Price:        11.00,
			Rating:       4.2,
			Tags:         []string{"salad", "fresh", "healthy", "vegetarian"},
		},
		{
			ItemID:       "curry_004",
			Name:         "Spicy Paneer Curry",
			Cuisine:      "indian",
			SpiceLevel:   4,
			IsVegetarian: true,
			Price:        16.25,
			Rating:       4.6,
			Tags:         []string{"curry", "spicy", "warm", "vegetarian"},
		},
		{
			ItemID:       "soup_005",
			Name:         "Hearty Minestrone Soup",
			Cuisine:      "italian",
			SpiceLevel:   1,
			IsVegetarian: true,
			Price:        9.75,
			Rating:       4.4,
			Tags:         []string{"soup", "warm", "comfort", "vegetarian"},
		},
		{
			ItemID:       "burger_006",
			Name:         "Smoky BBQ Burger",
			Cuisine:      "american",
			SpiceLevel:   2,
			IsVegetarian: false,
			Price:        17.50,
			Rating:       4.7,
			Tags:         []string{"burger", "grilled", "hearty"},
		},
		{
			ItemID:       "sushi_007",
			Name:         "Salmon Avocado Roll",
			Cuisine:      "japanese",
			SpiceLevel:   0,
			IsVegetarian: false,
			Price:        13.25,
			Rating:       4.8,
			Tags:         []string{"sushi", "fresh", "light"},
		},
		{
			ItemID:       "pancakes_008",
			Name:         "Blueberry Breakfast Pancakes",
			Cuisine:      "american",
			SpiceLevel:   0,
			IsVegetarian: true,
			Price:        10.50,
			Rating:       4.1,
			Tags:         []string{"breakfast", "sweet", "vegetarian"},
		},
		{
			ItemID:       "icecream_009",
			Name:         "Gelato Ice Cream Trio",
			Cuisine:      "italian",
			SpiceLevel:   0,
			IsVegetarian: true,
			Price:        7.25,
			Rating:       4.5,
			Tags:         []string{"dessert", "ice cream", "refreshing", "vegetarian"},
		},
		{
			ItemID:       "tacos_010",
			Name:         "Street Corn Tacos",
			Cuisine:      "mexican",
			SpiceLevel:   3,
			IsVegetarian: true,
			Price:        12.75,
			Rating:       4.4,
			Tags:         []string{"tacos", "spicy", "snack", "vegetarian"},
		},
	}

	for _, item := range items {
		if err := e.AddItem(item); err != nil {
			return err
		}
	}

	return nil
}
