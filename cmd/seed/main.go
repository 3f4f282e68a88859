package main

import (
	"context"
	"log"
	"strings"

	"github.com/pantrychef/backend/config"
	"github.com/pantrychef/backend/internal/database"
	"github.com/pantrychef/backend/internal/model"
	"github.com/pantrychef/backend/internal/service"
)

type seedRecipe struct {
	Name            string
	Description     string
	PrepTimeMinutes int
	CookTimeMinutes int
	Servings        int
	Difficulty      string
	Cuisine         string
	DietaryTags     []string
	ImageURL        string
	Instructions    []string
	Ingredients     []string
}

var recipes = []seedRecipe{
	{
		Name:            "Classic Spaghetti Carbonara",
		Description:     "A rich and creamy Italian pasta dish made with eggs, cheese, pancetta, and black pepper. Simple yet incredibly satisfying.",
		PrepTimeMinutes: 10, CookTimeMinutes: 20, Servings: 4,
		Difficulty: "Medium", Cuisine: "Italian",
		DietaryTags: []string{},
		ImageURL:    "https://images.unsplash.com/photo-1612874742237-6526221588e3?w=800&q=80",
		Instructions: []string{
			"Bring a large pot of salted water to boil. Cook spaghetti until al dente.",
			"While pasta cooks, cut pancetta into small cubes and fry until crispy.",
			"In a bowl, whisk together eggs, grated Pecorino, and black pepper.",
			"When pasta is ready, reserve 1 cup pasta water, then drain.",
			"Working quickly, add hot pasta to the pancetta pan (off heat).",
			"Pour egg mixture over pasta and toss vigorously. The residual heat will cook the eggs into a creamy sauce.",
			"Add pasta water as needed to achieve desired consistency.",
			"Serve immediately with extra cheese and pepper.",
		},
		Ingredients: []string{"spaghetti", "pancetta", "eggs", "pecorino romano", "black pepper", "salt"},
	},
	{
		Name:            "Thai Green Curry",
		Description:     "A fragrant and spicy Thai curry with coconut milk, vegetables, and your choice of protein. Bursting with fresh flavors.",
		PrepTimeMinutes: 15, CookTimeMinutes: 25, Servings: 4,
		Difficulty: "Easy", Cuisine: "Thai",
		DietaryTags: []string{"gluten-free"},
		ImageURL:    "https://images.unsplash.com/photo-1455619452474-d2be8b1e70cd?w=800&q=80",
		Instructions: []string{
			"Heat oil in a wok or large pan over medium-high heat.",
			"Add green curry paste and stir-fry for 1 minute until fragrant.",
			"Add coconut milk and bring to a simmer.",
			"Add chicken (or tofu) and cook for 5 minutes.",
			"Add vegetables (bamboo shoots, bell peppers, Thai eggplant).",
			"Season with fish sauce, palm sugar, and lime leaves.",
			"Simmer until vegetables are tender and protein is cooked through.",
			"Garnish with Thai basil and serve with jasmine rice.",
		},
		Ingredients: []string{"coconut milk", "green curry paste", "chicken breast", "bamboo shoots", "thai basil", "fish sauce", "palm sugar", "lime leaves", "vegetable oil", "jasmine rice"},
	},
	{
		Name:            "Simple Pasta Aglio e Olio",
		Description:     "A classic Italian pasta with garlic and olive oil. Simple yet incredibly flavorful. Perfect for a quick weeknight dinner.",
		PrepTimeMinutes: 5, CookTimeMinutes: 15, Servings: 2,
		Difficulty: "Easy", Cuisine: "Italian",
		DietaryTags: []string{"vegetarian", "vegan"},
		ImageURL:    "https://images.unsplash.com/photo-1563379926898-05f4575a45d8?w=800&q=80",
		Instructions: []string{
			"Bring a large pot of salted water to boil. Cook spaghetti until al dente.",
			"While pasta cooks, slice garlic thinly.",
			"Heat olive oil in a large pan over medium-low heat.",
			"Add garlic and red pepper flakes, cook until garlic is golden (not brown!).",
			"Reserve 1/2 cup pasta water, then drain pasta.",
			"Add pasta to the garlic oil, toss to coat.",
			"Add pasta water as needed and fresh parsley.",
			"Serve with a drizzle of good olive oil.",
		},
		Ingredients: []string{"spaghetti", "garlic", "olive oil", "red pepper flakes", "parsley", "salt"},
	},
	{
		Name:            "Chicken Tikka Masala",
		Description:     "Tender chicken pieces in a creamy, spiced tomato sauce. A beloved British-Indian classic that's comfort food at its best.",
		PrepTimeMinutes: 30, CookTimeMinutes: 30, Servings: 4,
		Difficulty: "Medium", Cuisine: "Indian",
		DietaryTags: []string{"gluten-free"},
		ImageURL:    "https://images.unsplash.com/photo-1565557623262-b51c2513a641?w=800&q=80",
		Instructions: []string{
			"Marinate chicken in yogurt, garam masala, cumin, and ginger for at least 1 hour.",
			"Thread chicken onto skewers and grill or broil until charred.",
			"For sauce: saute onions until golden, add garlic and ginger.",
			"Add tomato puree, garam masala, cumin, and paprika. Cook 5 minutes.",
			"Pour in cream and simmer until thickened.",
			"Add grilled chicken pieces to the sauce.",
			"Simmer together for 5 minutes.",
			"Garnish with fresh cilantro and serve with naan or rice.",
		},
		Ingredients: []string{"chicken thighs", "yogurt", "garam masala", "cumin", "ginger", "garlic", "onion", "tomato puree", "heavy cream", "cilantro"},
	},
	{
		Name:            "Vegetable Stir Fry",
		Description:     "A quick and healthy stir fry loaded with colorful vegetables. Ready in under 20 minutes!",
		PrepTimeMinutes: 10, CookTimeMinutes: 10, Servings: 3,
		Difficulty: "Easy", Cuisine: "Chinese",
		DietaryTags: []string{"vegetarian", "vegan"},
		ImageURL:    "https://images.unsplash.com/photo-1512058564366-18510be2db19?w=800&q=80",
		Instructions: []string{
			"Prepare all vegetables by slicing them uniformly.",
			"Mix sauce: soy sauce, sesame oil, rice vinegar, and cornstarch.",
			"Heat wok or large pan over high heat until smoking.",
			"Add oil, then stir-fry aromatics (garlic, ginger) for 30 seconds.",
			"Add hard vegetables first (carrots, broccoli), cook 2-3 minutes.",
			"Add softer vegetables (bell peppers, snap peas), cook 2 minutes.",
			"Pour sauce over vegetables, toss until glazed.",
			"Serve immediately over rice or noodles.",
		},
		Ingredients: []string{"broccoli", "bell pepper", "carrots", "snap peas", "garlic", "ginger", "soy sauce", "sesame oil", "vegetable oil", "rice"},
	},
	{
		Name:            "Classic Beef Tacos",
		Description:     "Seasoned ground beef in crispy taco shells with all your favorite toppings. A family favorite!",
		PrepTimeMinutes: 15, CookTimeMinutes: 15, Servings: 4,
		Difficulty: "Easy", Cuisine: "Mexican",
		DietaryTags: []string{},
		ImageURL:    "https://images.unsplash.com/photo-1551504734-5ee1c4a1479b?w=800&q=80",
		Instructions: []string{
			"Brown ground beef in a large skillet, breaking it up as it cooks.",
			"Drain excess fat.",
			"Add taco seasoning (cumin, chili powder, paprika, garlic) and water.",
			"Simmer until sauce thickens, about 5 minutes.",
			"Warm taco shells according to package directions.",
			"Prepare toppings: shred lettuce, dice tomatoes, grate cheese.",
			"Fill shells with beef and desired toppings.",
			"Serve with salsa, sour cream, and lime wedges.",
		},
		Ingredients: []string{"ground beef", "taco shells", "cumin", "chili powder", "paprika", "garlic powder", "lettuce", "tomatoes", "cheddar cheese", "sour cream", "salsa"},
	},
	{
		Name:            "Mushroom Risotto",
		Description:     "Creamy Italian rice dish with earthy mushrooms and Parmesan. Requires patience but worth every stir!",
		PrepTimeMinutes: 10, CookTimeMinutes: 35, Servings: 4,
		Difficulty: "Medium", Cuisine: "Italian",
		DietaryTags: []string{"vegetarian", "gluten-free"},
		ImageURL:    "https://images.unsplash.com/photo-1476124369491-e7addf5db371?w=800&q=80",
		Instructions: []string{
			"Heat broth in a saucepan and keep warm.",
			"Saute mushrooms in butter until golden, set aside.",
			"In the same pan, saute onion until translucent.",
			"Add arborio rice, toast for 2 minutes.",
			"Add wine, stir until absorbed.",
			"Add warm broth one ladle at a time, stirring constantly.",
			"Continue until rice is creamy but still al dente (about 20-25 minutes).",
			"Fold in mushrooms, butter, and Parmesan.",
			"Season and serve immediately.",
		},
		Ingredients: []string{"arborio rice", "mushrooms", "vegetable broth", "white wine", "onion", "garlic", "parmesan", "butter", "olive oil", "thyme"},
	},
	{
		Name:            "Honey Garlic Salmon",
		Description:     "Glazed salmon fillets with a sweet and savory honey garlic sauce. Elegant enough for guests, easy enough for weeknights.",
		PrepTimeMinutes: 10, CookTimeMinutes: 15, Servings: 4,
		Difficulty: "Easy", Cuisine: "American",
		DietaryTags: []string{"gluten-free"},
		ImageURL:    "https://images.unsplash.com/photo-1467003909585-2f8a72700288?w=800&q=80",
		Instructions: []string{
			"Mix honey, soy sauce, garlic, and lemon juice for the glaze.",
			"Season salmon fillets with salt and pepper.",
			"Heat oil in an oven-safe skillet over medium-high heat.",
			"Sear salmon skin-side up for 3 minutes until golden.",
			"Flip salmon, pour glaze around the fish.",
			"Transfer to 400F oven for 8-10 minutes until cooked through.",
			"Baste with glaze halfway through.",
			"Serve with pan sauce spooned over top.",
		},
		Ingredients: []string{"salmon fillets", "honey", "soy sauce", "garlic", "lemon juice", "olive oil", "salt", "black pepper"},
	},
	{
		Name:            "Greek Salad",
		Description:     "Fresh and vibrant Mediterranean salad with tomatoes, cucumbers, olives, and feta cheese. Perfect as a side or light meal.",
		PrepTimeMinutes: 15, CookTimeMinutes: 0, Servings: 4,
		Difficulty: "Easy", Cuisine: "Mediterranean",
		DietaryTags: []string{"vegetarian", "gluten-free"},
		ImageURL:    "https://images.unsplash.com/photo-1540189549336-e6e99c3679fe?w=800&q=80",
		Instructions: []string{
			"Cut tomatoes into wedges, cucumber into half-moons.",
			"Slice red onion thinly.",
			"Combine vegetables in a large bowl.",
			"Add Kalamata olives.",
			"Whisk olive oil, red wine vinegar, oregano, salt, and pepper.",
			"Pour dressing over salad and toss gently.",
			"Top with crumbled feta cheese.",
			"Serve immediately or chill for 30 minutes.",
		},
		Ingredients: []string{"tomatoes", "cucumber", "red onion", "kalamata olives", "feta cheese", "olive oil", "red wine vinegar", "oregano", "salt"},
	},
	{
		Name:            "Japanese Miso Soup",
		Description:     "A comforting Japanese soup with silky tofu and wakame seaweed in savory miso broth. A staple of Japanese cuisine.",
		PrepTimeMinutes: 5, CookTimeMinutes: 10, Servings: 4,
		Difficulty: "Easy", Cuisine: "Japanese",
		DietaryTags: []string{"vegetarian", "vegan"},
		ImageURL:    "https://images.unsplash.com/photo-1547592166-23ac45744acd?w=800&q=80",
		Instructions: []string{
			"Soak wakame seaweed in cold water for 5 minutes, drain.",
			"Heat dashi stock in a pot (or dissolve dashi powder in water).",
			"Cut tofu into small cubes.",
			"Add tofu and wakame to the hot broth.",
			"Remove pot from heat.",
			"Place miso paste in a ladle, submerge in broth and whisk to dissolve.",
			"Return to very low heat (do not boil or miso will lose flavor).",
			"Serve topped with sliced green onions.",
		},
		Ingredients: []string{"miso paste", "dashi stock", "silken tofu", "wakame seaweed", "green onions"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var count int64
	if err := db.Model(&model.Recipe{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count recipes: %v", err)
	}
	if count > 0 {
		log.Printf("Database already has %d recipes, skipping seed", count)
		return
	}

	catalog := service.NewRecipeService(db)
	ctx := context.Background()

	seen := make(map[string]bool)
	for _, r := range recipes {
		recipe := model.Recipe{
			Name:            r.Name,
			Description:     r.Description,
			Cuisine:         r.Cuisine,
			Difficulty:      r.Difficulty,
			PrepTimeMinutes: r.PrepTimeMinutes,
			CookTimeMinutes: r.CookTimeMinutes,
			Servings:        r.Servings,
			DietaryTags:     r.DietaryTags,
			Ingredients:     r.Ingredients,
			Instructions:    r.Instructions,
			ImageURL:        r.ImageURL,
		}
		if _, err := catalog.CreateRecipe(ctx, &recipe); err != nil {
			log.Fatalf("Failed to create recipe %q: %v", r.Name, err)
		}
		log.Printf("Added: %s", r.Name)

		for _, name := range r.Ingredients {
			name = strings.ToLower(strings.TrimSpace(name))
			if seen[name] {
				continue
			}
			seen[name] = true

			var existing model.Ingredient
			err := db.Where("name = ?", name).First(&existing).Error
			if err == nil {
				continue
			}
			if err := db.Create(&model.Ingredient{Name: name}).Error; err != nil {
				log.Fatalf("Failed to create ingredient %q: %v", name, err)
			}
		}
	}

	log.Printf("Successfully seeded %d recipes and %d unique ingredients", len(recipes), len(seen))
}
