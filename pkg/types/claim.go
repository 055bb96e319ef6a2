package types

import "strings"

type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "Pending"
	ClaimStatusCompleted ClaimStatus = "Completed"
	ClaimStatusCancelled ClaimStatus = "Cancelled"
)

// ValidClaimStatus reports whether s matches one of the three lifecycle
// statuses. Comparison is case-insensitive; the stored casing is preserved.
func ValidClaimStatus(s string) bool {
	switch strings.ToLower(s) {
	case "pending", "completed", "cancelled":
		return true
	}
	return false
}

type Claim struct {
	ClaimID    int     `db:"claim_id" form:"claim_id" json:"claim_id"`
	FoodID     int     `db:"food_id" form:"food_id" json:"food_id"`
	ReceiverID *int    `db:"receiver_id" form:"receiver_id" json:"receiver_id"`
	Status     string  `db:"status" form:"status" json:"status"`
	Timestamp  *string `db:"timestamp" form:"timestamp" json:"timestamp"`
}
