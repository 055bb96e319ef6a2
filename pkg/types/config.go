package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabasePath    string `envconfig:"DATABASE_PATH" default:"food_waste.db"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Source files for the load command
	ProvidersCSV string `envconfig:"PROVIDERS_CSV" default:"dataset/providers_data.csv"`
	ReceiversCSV string `envconfig:"RECEIVERS_CSV" default:"dataset/receivers_data.csv"`
	ListingsCSV  string `envconfig:"FOOD_LISTINGS_CSV" default:"dataset/food_listings_data.csv"`
	ClaimsCSV    string `envconfig:"CLAIMS_CSV" default:"dataset/claims_data.csv"`
}
