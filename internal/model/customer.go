package model

type Customer struct {
	BaseModel
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Document string `json:"document"` // tax identifier (CUIT/DNI)
	Active   bool   `json:"active"`
}
