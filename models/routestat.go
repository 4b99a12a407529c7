package models

import "time"

// RouteDailyStat stores aggregated request counts per day and route,
// used for the daily-active figure on the public stats endpoint.
type RouteDailyStat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"index:idx_route_stats_date_route,unique;type:date;not null" json:"date"`
	Route     string    `gorm:"index:idx_route_stats_date_route,unique;size:255;not null" json:"route"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
