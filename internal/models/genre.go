package models

// Genre is an entry of the static genre table.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
