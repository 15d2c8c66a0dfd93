package services

import (
	"math"
	"time"

	"hospital_backend/pkg/utils"
)

// OvertimeThreshold is the regular-hours cap of a single session.
const OvertimeThreshold = 8 * time.Hour

// ComputeHours splits a session into regular and overtime hours, each rounded to two decimals
// with halves rounded away from zero. clockOut must not precede clockIn.
func ComputeHours(clockIn, clockOut time.Time) (worked, overtime float64) {
	total := clockOut.Sub(clockIn).Hours()
	threshold := OvertimeThreshold.Hours()

	worked = math.Min(total, threshold)
	overtime = math.Max(0, total-threshold)
	return utils.Round2(worked), utils.Round2(overtime)
}
