// Package store is the write boundary over the attendance table. Every
// mutation of an AttendanceRecord in the system goes through the three
// transitions here: CheckIn creates, CheckOut closes, Sweep force-closes.
package store

import (
	"errors"
	"fmt"
	"time"

	"WORKSITE/models"
	"WORKSITE/workday"

	"gorm.io/gorm"
)

var (
	ErrAlreadyCheckedIn = errors.New("worker already has an attendance record for this work-day")
	ErrNoOpenRecord     = errors.New("no attendance record for this work-day")
	ErrAlreadyClosed    = errors.New("attendance record already closed")
)

type AttendanceStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

func openKey(workDate string, siteID uint, workerID string) string {
	return fmt.Sprintf("%s|%d|%s", workDate, siteID, workerID)
}

// CheckIn creates the attendance record for the worker's current work-day.
// Exactly one record per (workDate, site, worker) may exist: the application
// check catches the common retry, and the unique index on open_key catches
// the true race where two submissions pass the check simultaneously.
//
// Sites with the fixed-duration policy get their checkout pre-booked at
// check-in + AutoCheckoutHours; the record is born provisionally closed.
func (s *AttendanceStore) CheckIn(site models.Site, worker models.Worker, now time.Time) (*models.AttendanceRecord, error) {
	workDay := workday.Resolve(now, site.WorkDayStartHour)
	workDate := workDay.Format(workday.DateFormat)

	rec := models.AttendanceRecord{
		WorkDate:     workDate,
		SiteID:       site.ID,
		TeamID:       worker.TeamID,
		WorkerID:     worker.ID,
		WorkerName:   worker.Name,
		RoleSnapshot: worker.Role,
		BirthDate:    worker.BirthDate,
		CheckInAt:    now,
	}

	if worker.BirthDate != "" {
		birth, err := workday.ParseBirthDate(worker.BirthDate)
		if err != nil {
			return nil, err
		}
		// Age against the work-date, not wall-clock, so a birthday between
		// the bucket date and the processing time cannot flip the result.
		rec.Age = workday.Age(birth, workDay)
		rec.IsSenior = workday.IsSenior(birth, workDay, site.SeniorAgeThreshold)
	}

	// The key stays populated while the record is open or only
	// provisionally closed; a final manual checkout clears it. Auto-policy
	// records keep it so a racing duplicate check-in dies on the index too.
	key := openKey(workDate, site.ID, worker.ID)
	rec.OpenKey = &key

	if site.CheckoutPolicy == models.CheckoutPolicyAutoFixed {
		out := now.Add(time.Duration(site.AutoCheckoutHours) * time.Hour)
		rec.CheckOutAt = &out
		rec.IsAutoClosed = true
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.AttendanceRecord
		err := tx.Where("work_date = ? AND site_id = ? AND worker_id = ?",
			workDate, site.ID, worker.ID).First(&existing).Error
		if err == nil {
			return ErrAlreadyCheckedIn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&rec).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrAlreadyCheckedIn
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CheckOut finalizes the worker's record for the current work-day. An
// auto-closed record (fixed-duration policy or sweep) is provisional and may
// be overwritten once; a manual close is final. The update itself is a
// compare-and-set on the open-or-provisional predicate so two racing
// checkouts cannot both land.
func (s *AttendanceStore) CheckOut(site models.Site, workerID string, now time.Time) (*models.AttendanceRecord, float64, error) {
	workDate := workday.ResolveDate(now, site.WorkDayStartHour)

	var rec models.AttendanceRecord
	err := s.db.Where("work_date = ? AND site_id = ? AND worker_id = ?",
		workDate, site.ID, workerID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, ErrNoOpenRecord
	}
	if err != nil {
		return nil, 0, err
	}
	if rec.CheckOutAt != nil && !rec.IsAutoClosed {
		return nil, 0, ErrAlreadyClosed
	}

	out := now
	if out.Before(rec.CheckInAt) {
		// Skewed caller clock; a checkout can never precede its check-in.
		out = rec.CheckInAt
	}

	res := s.db.Model(&models.AttendanceRecord{}).
		Where("id = ? AND (check_out_at IS NULL OR is_auto_closed = ?)", rec.ID, true).
		Updates(map[string]interface{}{
			"check_out_at":   out,
			"is_auto_closed": false,
			"open_key":       nil,
		})
	if res.Error != nil {
		return nil, 0, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, 0, ErrAlreadyClosed
	}

	rec.CheckOutAt = &out
	rec.IsAutoClosed = false
	rec.OpenKey = nil
	return &rec, workday.RoundHours(out.Sub(rec.CheckInAt)), nil
}

// Sweep force-closes every record still open for the current work-day, for
// one site or all of them. The eligibility predicate alone makes repeat runs
// safe: a second invocation matches nothing and reports zero. Records left
// open on earlier work-days are deliberately not touched. The whole batch
// commits or rolls back as one transaction.
func (s *AttendanceStore) Sweep(siteID *uint, now time.Time) (int64, error) {
	var sites []models.Site
	q := s.db
	if siteID != nil {
		q = q.Where("id = ?", *siteID)
	}
	if err := q.Find(&sites).Error; err != nil {
		return 0, err
	}

	var closed int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, site := range sites {
			workDate := workday.ResolveDate(now, site.WorkDayStartHour)
			// open_key survives the sweep: the close is provisional and the
			// record may still take a real checkout.
			res := tx.Model(&models.AttendanceRecord{}).
				Where("site_id = ? AND work_date = ? AND check_out_at IS NULL", site.ID, workDate).
				Updates(map[string]interface{}{
					"check_out_at":   now,
					"is_auto_closed": true,
				})
			if res.Error != nil {
				return res.Error
			}
			closed += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return closed, nil
}

// MonthRecords returns the worker's records for a calendar month, newest
// first. Read-only; the report layer derives totals from it.
func (s *AttendanceStore) MonthRecords(workerID string, year int, month time.Month) ([]models.AttendanceRecord, error) {
	first, last := workday.MonthBounds(year, month)
	var records []models.AttendanceRecord
	err := s.db.Where("worker_id = ? AND work_date BETWEEN ? AND ?", workerID, first, last).
		Order("work_date desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// RecentClosed returns the worker's latest closed records, newest first.
// Training data for the checkout-time predictor.
func (s *AttendanceStore) RecentClosed(workerID string, limit int) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := s.db.Where("worker_id = ? AND check_out_at IS NOT NULL", workerID).
		Order("id desc").Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
