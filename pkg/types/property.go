package types

import "fmt"

type PropertyId string

// Property is a single listing. It is never mutated after load, only reordered.
type Property struct {
	Id        PropertyId `json:"_id"`
	Index     int        `json:"index"`
	Address   string     `json:"address"`
	City      string     `json:"city,omitempty"`
	Picture   string     `json:"picture,omitempty"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Price     int        `json:"price"`
	Bedrooms  int        `json:"bedrooms"`
	Bathrooms int        `json:"bathrooms"`
	CarSpaces int        `json:"carSpaces"`
}

func (p *Property) GetId() PropertyId {
	return p.Id
}

func (p *Property) GetPrice() int {
	return p.Price
}

// CardAnchor is the element id of the card rendered for this property.
func (p *Property) CardAnchor() string {
	return fmt.Sprintf("card-%d", p.Index)
}

func (p *Property) ToString() string {
	return fmt.Sprintf("%s (%d) %s, %d bed %d bath %d car, %d", p.Id, p.Index, p.Address, p.Bedrooms, p.Bathrooms, p.CarSpaces, p.Price)
}

type PropertyHandler interface {
	HandleProperties(properties []Property) error
}
