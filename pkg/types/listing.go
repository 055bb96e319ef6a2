package types

// FoodListing mirrors the food_listings table. Provider type and location are
// denormalized from the owning provider at listing time. ExpiryDate is an
// ISO 8601 date kept as text and compared lexically.
type FoodListing struct {
	FoodID       int     `db:"food_id" form:"food_id" json:"food_id"`
	FoodName     *string `db:"food_name" form:"food_name" json:"food_name"`
	Quantity     *int    `db:"quantity" form:"quantity" json:"quantity"`
	ExpiryDate   *string `db:"expiry_date" form:"expiry_date" json:"expiry_date"`
	ProviderID   *int    `db:"provider_id" form:"provider_id" json:"provider_id"`
	ProviderType *string `db:"provider_type" form:"provider_type" json:"provider_type"`
	Location     *string `db:"location" form:"location" json:"location"`
	FoodType     *string `db:"food_type" form:"food_type" json:"food_type"`
	MealType     *string `db:"meal_type" form:"meal_type" json:"meal_type"`
}
