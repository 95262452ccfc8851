package model

import "github.com/lib/pq"

type Film struct {
	Document
	Title        string         `json:"title"`
	EpisodeID    string         `gorm:"column:episode_id" json:"episode_id"`
	OpeningCrawl string         `json:"opening_crawl"`
	Director     string         `json:"director"`
	Producer     string         `json:"producer"`
	ReleaseDate  string         `json:"release_date"`
	Characters   pq.StringArray `gorm:"type:text[]" json:"characters"`
	Planets      pq.StringArray `gorm:"type:text[]" json:"planets"`
	Starships    pq.StringArray `gorm:"type:text[]" json:"starships"`
	Vehicles     pq.StringArray `gorm:"type:text[]" json:"vehicles"`
	Species      pq.StringArray `gorm:"type:text[]" json:"species"`
}

func (Film) TableName() string {
	return "films"
}

// FilmRepr is the public representation of a Film
type FilmRepr struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	EpisodeID    string `json:"episode_id"`
	ReleaseDate  string `json:"release_date"`
	Director     string `json:"director"`
	OpeningCrawl string `json:"opening_crawl"`
	Created      string `json:"created"`
}

func (f *Film) APIRepr() FilmRepr {
	return FilmRepr{
		ID:           f.ID,
		Title:        f.Title,
		EpisodeID:    f.EpisodeID,
		ReleaseDate:  f.ReleaseDate,
		Director:     f.Director,
		OpeningCrawl: f.OpeningCrawl,
		Created:      f.Created,
	}
}
