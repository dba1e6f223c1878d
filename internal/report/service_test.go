package report_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/core/types"
	"github.com/nbelhadj/maintenance-management/internal/report"
	"github.com/nbelhadj/maintenance-management/internal/workshop"
)

func TestReport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Suite")
}

type mockReportRepository struct {
	reports map[int64]*report.FailureReport
	nextID  int64
}

func newMockReportRepository() *mockReportRepository {
	return &mockReportRepository{reports: make(map[int64]*report.FailureReport), nextID: 1}
}

func (m *mockReportRepository) Create(rep *report.FailureReport) error {
	rep.ID = m.nextID
	m.nextID++
	m.reports[rep.ID] = rep
	return nil
}

func (m *mockReportRepository) GetByID(id int64) (*report.FailureReport, error) {
	rep, ok := m.reports[id]
	if !ok {
		return nil, report.ErrNotFound
	}
	return rep, nil
}

func (m *mockReportRepository) List() ([]*report.FailureReport, error) {
	out := make([]*report.FailureReport, 0, len(m.reports))
	for _, rep := range m.reports {
		out = append(out, rep)
	}
	return out, nil
}

func (m *mockReportRepository) Update(rep *report.FailureReport) error {
	m.reports[rep.ID] = rep
	return nil
}

func (m *mockReportRepository) Delete(id int64) error {
	delete(m.reports, id)
	return nil
}

type mockAssetChecker struct {
	workshops map[int64]*workshop.Workshop
	equipment map[int64]*workshop.Equipment
}

func newMockAssetChecker() *mockAssetChecker {
	return &mockAssetChecker{
		workshops: map[int64]*workshop.Workshop{1: {ID: 1, Name: "Atelier A"}},
		equipment: map[int64]*workshop.Equipment{1: {ID: 1, Name: "Presse", WorkshopID: 1}},
	}
}

func (m *mockAssetChecker) GetWorkshop(id int64) (*workshop.Workshop, error) {
	ws, ok := m.workshops[id]
	if !ok {
		return nil, internal.NewNotFoundError("workshop not found", internal.ErrCodeWorkshopNotFound)
	}
	return ws, nil
}

func (m *mockAssetChecker) GetEquipment(id int64) (*workshop.Equipment, error) {
	eq, ok := m.equipment[id]
	if !ok {
		return nil, internal.NewNotFoundError("equipment not found", internal.ErrCodeEquipmentNotFound)
	}
	return eq, nil
}

func mustTime(s string) types.TimeOfDay {
	t, err := types.ParseTimeOfDay(s)
	Expect(err).NotTo(HaveOccurred())
	return t
}

var _ = Describe("FailureReport", func() {
	Describe("ComputeElapsed", func() {
		It("computes a same-day interval", func() {
			rep := &report.FailureReport{StartTime: mustTime("08:00"), EndTime: mustTime("17:30")}
			rep.ComputeElapsed()
			Expect(types.FormatDuration(rep.Elapsed())).To(Equal("9:30:00"))
		})

		It("wraps past midnight when the end is before the start", func() {
			rep := &report.FailureReport{StartTime: mustTime("22:00"), EndTime: mustTime("02:00")}
			rep.ComputeElapsed()
			Expect(types.FormatDuration(rep.Elapsed())).To(Equal("4:00:00"))
		})

		It("yields zero for identical times", func() {
			rep := &report.FailureReport{StartTime: mustTime("06:15"), EndTime: mustTime("06:15")}
			rep.ComputeElapsed()
			Expect(rep.Elapsed()).To(Equal(time.Duration(0)))
		})
	})
})

var _ = Describe("ReportService", func() {
	var (
		svc  *report.Service
		repo *mockReportRepository
	)

	validDTO := func() report.ReportDTO {
		return report.ReportDTO{
			WorkshopID:  1,
			EquipmentID: 1,
			FailureDate: types.NewDate(2026, time.March, 12),
			StartTime:   mustTime("22:00"),
			EndTime:     mustTime("02:00"),
			Severity:    "majeure",
			Pilot:       "durand",
		}
	}

	BeforeEach(func() {
		repo = newMockReportRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = report.NewService(repo, newMockAssetChecker(), logger)
	})

	It("derives the elapsed duration on create", func() {
		resp, err := svc.Create(validDTO())
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Elapsed).To(Equal("4:00:00"))
	})

	It("recomputes the elapsed duration on update", func() {
		resp, err := svc.Create(validDTO())
		Expect(err).NotTo(HaveOccurred())

		dto := validDTO()
		dto.StartTime = mustTime("08:00")
		dto.EndTime = mustTime("17:30")
		updated, err := svc.Update(resp.ID, dto)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Elapsed).To(Equal("9:30:00"))
	})

	It("rejects a report against an unknown workshop", func() {
		dto := validDTO()
		dto.WorkshopID = 99
		_, err := svc.Create(dto)
		Expect(err).To(HaveOccurred())
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeWorkshopNotFound))
	})

	It("rejects a report against unknown equipment", func() {
		dto := validDTO()
		dto.EquipmentID = 99
		_, err := svc.Create(dto)
		Expect(err).To(HaveOccurred())
	})

	It("returns not found for a missing report", func() {
		_, err := svc.GetByID(123)
		Expect(err).To(HaveOccurred())
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeReportNotFound))
	})
})
