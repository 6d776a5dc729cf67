package models

// Branch is a physical library location. The full branch list is small
// enough to ship to the client in one payload.
type Branch struct {
	ID      string `json:"id"`
	City    string `json:"city"`
	Address string `json:"address"`
}
