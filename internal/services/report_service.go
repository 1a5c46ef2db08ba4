package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type CreateReportInput struct {
	ClientID       *uint      `json:"client_id"`
	PractitionerID *uint      `json:"practitioner_id"`
	PeriodStart    *time.Time `json:"period_start"`
	PeriodEnd      *time.Time `json:"period_end"`
	Title          string     `json:"title" binding:"required"`
	Content        string     `json:"content" binding:"required"`
	PDFURL         string     `json:"pdf_url"`
}

type UpdateReportInput struct {
	ClientID       *uint      `json:"client_id,omitempty"`
	PractitionerID *uint      `json:"practitioner_id,omitempty"`
	PeriodStart    *time.Time `json:"period_start,omitempty"`
	PeriodEnd      *time.Time `json:"period_end,omitempty"`
	Title          *string    `json:"title,omitempty"`
	Content        *string    `json:"content,omitempty"`
	PDFURL         *string    `json:"pdf_url,omitempty"`
}

type ReportFilter struct {
	ClientID       *uint
	PractitionerID *uint
}

func reportSnapshot(r *models.Report) map[string]any {
	return map[string]any{
		"client_id":       r.ClientID,
		"practitioner_id": r.PractitionerID,
		"period_start":    r.PeriodStart,
		"period_end":      r.PeriodEnd,
		"title":           r.Title,
		"content":         r.Content,
		"pdf_url":         r.PDFURL,
	}
}

func (s *ReportService) checkRefs(tenantID uint, clientID, practitionerID *uint) error {
	if clientID != nil {
		if err := ensureClientInTenant(s.db, tenantID, *clientID); err != nil {
			return err
		}
	}
	if practitionerID != nil {
		if err := ensureUserInTenant(s.db, tenantID, *practitionerID,
			"practitioner_not_in_tenant", "Practitioner not found for this tenant."); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReportService) Create(actor *models.User, in CreateReportInput) (*models.Report, error) {
	if err := s.checkRefs(actor.TenantID, in.ClientID, in.PractitionerID); err != nil {
		return nil, err
	}

	report := models.Report{
		TenantID:       actor.TenantID,
		ClientID:       in.ClientID,
		PractitionerID: in.PractitionerID,
		PeriodStart:    in.PeriodStart,
		PeriodEnd:      in.PeriodEnd,
		Title:          in.Title,
		Content:        in.Content,
		PDFURL:         in.PDFURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "report", report.ID, audit.ActionCreate, audit.Changes{
			After: reportSnapshot(&report),
		})
	})
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (s *ReportService) List(tenantID uint, filter ReportFilter) ([]models.Report, error) {
	q := s.db.Where("tenant_id = ?", tenantID)

	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.PractitionerID != nil {
		q = q.Where("practitioner_id = ?", *filter.PractitionerID)
	}

	var reports []models.Report
	if err := q.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *ReportService) Get(tenantID, reportID uint) (*models.Report, error) {
	var report models.Report
	if err := s.db.
		Where("id = ? AND tenant_id = ?", reportID, tenantID).
		First(&report).Error; err != nil {
		return nil, notFoundOr(err, "report_not_found", "Report not found.")
	}
	return &report, nil
}

func (s *ReportService) Update(actor *models.User, reportID uint, in CreateReportInput) (*models.Report, error) {
	report, err := s.Get(actor.TenantID, reportID)
	if err != nil {
		return nil, err
	}

	if err := s.checkRefs(actor.TenantID, in.ClientID, in.PractitionerID); err != nil {
		return nil, err
	}

	before := reportSnapshot(report)

	report.ClientID = in.ClientID
	report.PractitionerID = in.PractitionerID
	report.PeriodStart = in.PeriodStart
	report.PeriodEnd = in.PeriodEnd
	report.Title = in.Title
	report.Content = in.Content
	report.PDFURL = in.PDFURL

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(report).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "report", report.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  reportSnapshot(report),
		})
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (s *ReportService) Patch(actor *models.User, reportID uint, in UpdateReportInput) (*models.Report, error) {
	report, err := s.Get(actor.TenantID, reportID)
	if err != nil {
		return nil, err
	}

	if err := s.checkRefs(actor.TenantID, in.ClientID, in.PractitionerID); err != nil {
		return nil, err
	}

	before := reportSnapshot(report)
	applied := map[string]any{}

	if in.ClientID != nil {
		report.ClientID = in.ClientID
		applied["client_id"] = *in.ClientID
	}
	if in.PractitionerID != nil {
		report.PractitionerID = in.PractitionerID
		applied["practitioner_id"] = *in.PractitionerID
	}
	if in.PeriodStart != nil {
		report.PeriodStart = in.PeriodStart
		applied["period_start"] = *in.PeriodStart
	}
	if in.PeriodEnd != nil {
		report.PeriodEnd = in.PeriodEnd
		applied["period_end"] = *in.PeriodEnd
	}
	if in.Title != nil {
		report.Title = *in.Title
		applied["title"] = *in.Title
	}
	if in.Content != nil {
		report.Content = *in.Content
		applied["content"] = *in.Content
	}
	if in.PDFURL != nil {
		report.PDFURL = *in.PDFURL
		applied["pdf_url"] = *in.PDFURL
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(report).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "report", report.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (s *ReportService) Delete(actor *models.User, reportID uint) error {
	report, err := s.Get(actor.TenantID, reportID)
	if err != nil {
		return err
	}

	before := reportSnapshot(report)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(report).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "report", report.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
