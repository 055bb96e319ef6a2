package types

type Provider struct {
	ProviderID int     `db:"provider_id" form:"provider_id" json:"provider_id"`
	Name       *string `db:"name" form:"name" json:"name"`
	Type       *string `db:"type" form:"type" json:"type"`
	Address    *string `db:"address" form:"address" json:"address"`
	City       *string `db:"city" form:"city" json:"city"`
	Contact    *string `db:"contact" form:"contact" json:"contact"`
}
