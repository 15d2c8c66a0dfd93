package models

// DashboardSummary holds the admin overview counters.
type DashboardSummary struct {
	Patients               int `json:"patients"`
	PendingAppointments    int `json:"pending_appointments"`
	OpenClockSessions      int `json:"open_clock_sessions"`
	PendingPaymentRequests int `json:"pending_payment_requests"`
	LowStockPharmacyItems  int `json:"low_stock_pharmacy_items"`
	LowStockInventoryItems int `json:"low_stock_inventory_items"`
}
