package models

import "gorm.io/gorm"

// Genre describes the genre a movie belongs to. Stored embedded in the
// movie row rather than as its own collection.
type Genre struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// Director describes the movie's director.
type Director struct {
	Name      string `json:"name" validate:"omitempty,max=100"`
	BirthYear int    `json:"birthYear" validate:"omitempty,gte=1800"`
}

// Movie represents a single title in the catalog.
type Movie struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string   `json:"title" gorm:"uniqueIndex;type:varchar(255)" validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"required,max=2000"`
	Genre       Genre    `json:"genre" gorm:"embedded;embeddedPrefix:genre_"`
	Director    Director `json:"director" gorm:"embedded;embeddedPrefix:director_"`
	Actors      []string `json:"actors" gorm:"serializer:json"`
	ImagePath   string   `json:"imagePath" validate:"omitempty,max=500"`
	Featured    bool     `json:"featured"`
	ReleaseYear int      `json:"releaseYear" validate:"omitempty,gte=1888"`
	Rating      float64  `json:"rating" validate:"omitempty,gte=0,lte=10"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
