package model

// Species is a shared catalog entry, not owned by any user.
type Species struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Nom   string  `json:"nom" gorm:"uniqueIndex;size:255;not null"`
	Image *string `json:"image" gorm:"size:500"`
}

// DiveSpecies links a species to a dive. A species may be attached to a given
// dive at most once, enforced by the composite unique index.
type DiveSpecies struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	DiveID    uint `json:"id_plongee" gorm:"uniqueIndex:idx_dive_species;not null"`
	SpeciesID uint `json:"id_espece" gorm:"uniqueIndex:idx_dive_species;not null"`
}
