// Package model
package model

import "time"

// Price last market price sample
type Price struct {
	Value float64   `json:"value"`
	Time  time.Time `json:"time"`
}
