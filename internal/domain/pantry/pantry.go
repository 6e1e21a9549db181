package pantry

// Item is one entry of the pantry snapshot served by the inventory service.
// This core never mutates pantry items; it only reads the snapshot.
type Item struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity,omitempty"`
	Unit       string  `json:"unit,omitempty"`
	Location   string  `json:"location,omitempty"`
	ExpiryDate *string `json:"expiry_date"`
}
