package dto

import "github.com/BruksfildServices01/bank-booking-portal/internal/models"

// AppointmentView is an appointment joined with its customer for admin rendering.
type AppointmentView struct {
	models.Appointment

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	ServiceName   string `json:"serviceName"`
	BranchName    string `json:"branchName"`
}

type CustomerAppointments struct {
	Upcoming []models.Appointment `json:"upcoming"`
	Past     []models.Appointment `json:"past"`
}

type AppointmentStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Today     int `json:"today"`
}
