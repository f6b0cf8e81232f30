package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The four catalogue entities hold denormalised, bidirectional, embedded
// copies of each other: an Artist and a RecordCompany each embed snapshots of
// their Albums, and an Album embeds snapshots of its Songs. The document
// store is always the source of truth for these copies, the cache never is.

// Artist is a performing artist or band
type Artist struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	DateFormed string             `bson:"dateFormed" json:"dateFormed"`
	Members    []string           `bson:"members" json:"members"`
	Albums     []Album            `bson:"albums" json:"albums"`
}

// Album is a released record. ArtistID and CompanyID reference the owning
// documents, both of which also carry an embedded copy of the album.
type Album struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	ReleaseDate string             `bson:"releaseDate" json:"releaseDate"`
	Genre       string             `bson:"genre" json:"genre"`
	ArtistID    primitive.ObjectID `bson:"artistId" json:"artistId"`
	CompanyID   primitive.ObjectID `bson:"recordCompanyId" json:"recordCompanyId"`
	Songs       []Song             `bson:"songs" json:"songs"`
}

// RecordCompany is a label
type RecordCompany struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	FoundedYear int                `bson:"foundedYear" json:"foundedYear"`
	Country     string             `bson:"country" json:"country"`
	Albums      []Album            `bson:"albums" json:"albums"`
}

// Song is a single track. AlbumID references the owning album, which also
// carries an embedded copy of the song.
type Song struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Title    string             `bson:"title" json:"title"`
	Duration string             `bson:"duration" json:"duration"`
	AlbumID  primitive.ObjectID `bson:"albumId" json:"albumId"`
}
