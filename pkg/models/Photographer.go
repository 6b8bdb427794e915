package models

import (
	"fmt"
)

var (
	ErrPhotographerNotFound = fmt.Errorf("photographer not found")
)

type Photographer struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Tagline    string `json:"tagline"`
	Price      int    `json:"price"`
	Portrait   string `json:"portrait"`
	FolderName string `json:"folderName"`
}

type PhotographerStats struct {
	TotalLikes int
	Price      int
}
