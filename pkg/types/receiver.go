package types

type Receiver struct {
	ReceiverID int     `db:"receiver_id" form:"receiver_id" json:"receiver_id"`
	Name       *string `db:"name" form:"name" json:"name"`
	Type       *string `db:"type" form:"type" json:"type"`
	City       *string `db:"city" form:"city" json:"city"`
	Contact    *string `db:"contact" form:"contact" json:"contact"`
}
