package configs

import (
	"log"

	"github.com/cb023725/pos-project/entity"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first staff account from env, once.
func SeedAdmin(email, pass string) error {
	db := DB()
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}

func price(v int64) *int64 { return &v }
func stock(v int) *int     { return &v }

// SeedMenu populates the menu catalog into an empty store: sellable items plus
// one raw-ingredient record per consumed id, so checkout always has a stock
// target to deduct from.
func SeedMenu() error {
	db := DB()

	var count int64
	if err := db.Model(&entity.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []entity.MenuItem{
		// 小點
		{ID: "seafood_fry", Name: "酥炸海鮮", Price: price(210), Category: "小點", SortOrder: 1, Consumes: entity.StringList{"seafood_i"}},
		{ID: "chicken_fry", Name: "五香炸雞", Price: price(140), Category: "小點", SortOrder: 2, Consumes: entity.StringList{"fried_chicken_i"}},
		{ID: "pork_ball", Name: "蜜椒小豬球", Price: price(130), Category: "小點", SortOrder: 3, Consumes: entity.StringList{"pig_balls_i"}},
		{ID: "mushrooms_fry", Name: "炸綜合菇", Price: price(100), Category: "小點", SortOrder: 4},
		{ID: "fries", Name: "脆薯", Price: price(80), Category: "小點", SortOrder: 5},
		{ID: "egg_tofu", Name: "炸雞蛋豆腐", Price: price(70), Category: "小點", SortOrder: 6},
		{ID: "rice_bowl", Name: "白飯", Price: price(30), Category: "小點", SortOrder: 7},
		{ID: "soup", Name: "海帶豆腐湯", Price: price(30), Category: "小點", SortOrder: 13},

		// 主餐
		{ID: "beef_stew", Name: "紅燒牛腩筋飯", Price: price(340), Category: "主餐", SortOrder: 1, Consumes: entity.StringList{"beef_i"}},
		{ID: "pork_ribs", Name: "無錫排骨飯", Price: price(340), Category: "主餐", SortOrder: 2, Consumes: entity.StringList{"pork_ribs_i"}},
		{ID: "milkfish", Name: "虱目魚肚飯", Price: price(280), Category: "主餐", SortOrder: 3, Consumes: entity.StringList{"milkfish_i"}},
		{ID: "chicken_curry", Name: "雞胸咖哩飯", Price: price(280), Category: "主餐", SortOrder: 4, Consumes: entity.StringList{"curry_chicken_i"}},
		{ID: "goulash", Name: "匈牙利燉牛肉湯", Price: price(330), Category: "主餐", SortOrder: 7, Consumes: entity.StringList{"goulash_i"}},
		{ID: "mentaiko_pasta", Name: "明太子義大利麵", Price: price(280), Category: "主餐", SortOrder: 10},

		// 飲品
		{ID: "luohan", Name: "百草羅漢", Price: price(75), Category: "飲品", SortOrder: 20},
		{ID: "coke", Name: "可樂", Price: price(40), Category: "飲品", SortOrder: 23},
		{ID: "americano", Name: "美式咖啡", Price: price(70), Category: "飲品", SortOrder: 28},

		// 冷凍包 (shelf items with their own stock count)
		{ID: "frozen_beef", Name: "[冷凍包]紅燒牛腩筋", Price: price(380), Category: "冷凍包", Stock: stock(30), SortOrder: 31},
		{ID: "frozen_pork", Name: "[冷凍包]無錫排骨", Price: price(380), Category: "冷凍包", Stock: stock(30), SortOrder: 32},
		{ID: "xo_sauce", Name: "海味XO醬", Price: price(320), Category: "冷凍包", Stock: stock(30), SortOrder: 35},
	}

	ingredientNames := map[string]string{
		"seafood_i":       "海鮮(份)",
		"fried_chicken_i": "炸雞(份)",
		"pig_balls_i":     "小豬球(份)",
		"beef_i":          "牛腩筋(克)",
		"pork_ribs_i":     "排骨(份)",
		"milkfish_i":      "虱目魚肚(份)",
		"curry_chicken_i": "咖哩雞胸(份)",
		"goulash_i":       "匈牙利燉肉(份)",
	}

	for _, it := range items {
		if err := db.Create(&it).Error; err != nil {
			return err
		}
	}

	// raw-ingredient records: no price, inventory category, tracked stock
	sort := 1
	seen := map[string]bool{}
	for _, it := range items {
		for _, id := range it.Consumes {
			if seen[id] {
				continue
			}
			seen[id] = true
			name := ingredientNames[id]
			if name == "" {
				name = id
			}
			ing := entity.MenuItem{
				ID:        id,
				Name:      name,
				Category:  entity.InventoryCategory,
				Stock:     stock(100),
				SortOrder: sort,
			}
			sort++
			if err := db.Create(&ing).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
