package models

import "gorm.io/gorm"

// Content documents backing the public pages of the agency site. They are flat
// records with no cross-references; the store only ever touches them one at a
// time, keyed by ID.

// DigitalService is a marketing entry on the services page.
type DigitalService struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Icon        string `json:"icon" validate:"omitempty,max=500"`
	gorm.Model
}

// Product is an item on the products showcase page.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Image       string  `json:"image" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"gte=0"`
	gorm.Model
}

// TeamMember is a profile on the team page.
type TeamMember struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Position string `json:"position" validate:"omitempty,max=200"`
	Image    string `json:"image" validate:"omitempty,max=500"`
	Bio      string `json:"bio" validate:"omitempty,max=2000"`
	gorm.Model
}

// Project is a portfolio entry.
type Project struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Image       string `json:"image" validate:"omitempty,max=500"`
	Link        string `json:"link" validate:"omitempty,max=500"`
	gorm.Model
}

// Testimonial is a client quote. Public listings return only the projected
// display fields (see TestimonialCard); the full record is admin-only.
type Testimonial struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Company  string `json:"company" validate:"omitempty,max=200"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Quote    string `json:"quote" validate:"required,max=2000"`
	Rating   int    `json:"rating" validate:"gte=0,lte=5"`
	Image    string `json:"image" validate:"omitempty,max=500"`
	Approved bool   `json:"approved"`
	gorm.Model
}

// TestimonialCard is the projected subset of Testimonial served on public reads.
type TestimonialCard struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Quote   string `json:"quote"`
	Rating  int    `json:"rating"`
	Image   string `json:"image"`
}

// ID accessors let the generic content repository assign and read primary keys
// without reflection.

func (s *DigitalService) GetID() string   { return s.ID }
func (s *DigitalService) SetID(id string) { s.ID = id }

func (p *Product) GetID() string   { return p.ID }
func (p *Product) SetID(id string) { p.ID = id }

func (m *TeamMember) GetID() string   { return m.ID }
func (m *TeamMember) SetID(id string) { m.ID = id }

func (p *Project) GetID() string   { return p.ID }
func (p *Project) SetID(id string) { p.ID = id }

func (t *Testimonial) GetID() string   { return t.ID }
func (t *Testimonial) SetID(id string) { t.ID = id }
