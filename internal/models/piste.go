package models

import (
	"gorm.io/gorm"
)

type PisteColor string

const (
	ColorGreen PisteColor = "GREEN"
	ColorBlue  PisteColor = "BLUE"
	ColorRed   PisteColor = "RED"
	ColorBlack PisteColor = "BLACK"
)

type Piste struct {
	gorm.Model
	NamePiste string     `json:"name_piste"`
	Color     PisteColor `json:"color"`
	Length    int        `json:"length"`
	Slope     int        `json:"slope"`
}
